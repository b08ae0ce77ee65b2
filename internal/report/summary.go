package report

import (
	"fmt"
	"strconv"
	"strings"

	"innermotion/internal/engine"
	"innermotion/internal/experiment"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline squeezes values in [0, 1] into width bucket averages.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if width > len(values) {
		width = len(values)
	}
	var sb strings.Builder
	for b := 0; b < width; b++ {
		lo := b * len(values) / width
		hi := (b + 1) * len(values) / width
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		avg := sum / float64(hi-lo)
		idx := int(avg * float64(len(sparkRunes)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// StepLabel renders a milestone step, or "never" for 0.
func StepLabel(step int) string {
	if step <= 0 {
		return "never"
	}
	return strconv.Itoa(step)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Summary renders the end-of-run view of one simulation.
func Summary(s engine.Summary, styles Styles) string {
	t := NewTable(fmt.Sprintf("%s / %s", s.Variant, s.Environment), "metric", "value")
	t.AddRow("run", s.RunID)
	t.AddRow("vocabulary", strconv.Itoa(s.Vocabulary))
	t.AddRow("memory", onOff(s.MemoryEnabled))
	t.AddRow("dna", onOff(s.DNAEnabled))
	t.AddRow("steps", strconv.Itoa(s.Steps))
	t.AddRow("conscious steps", strconv.Itoa(s.ConsciousSteps))
	t.AddRow("consciousness rate", percent(s.ConsciousnessRate))
	t.AddRow("first conscious", StepLabel(s.EmergedAt))
	if s.EmergedAt > 0 {
		t.AddRow("self then", fmt.Sprintf("%.4f", s.SelfStrengthAtEmergence))
		t.AddRow("mean conscious sync", fmt.Sprintf("%.4f", s.MeanConsciousSync))
	}
	t.AddRow("final self-strength", fmt.Sprintf("%.4f", s.FinalSelfStrength))
	t.AddRow("language at", StepLabel(s.LanguageAcquiredAt))
	if s.DNAEnabled {
		t.AddRow("mixed states", strconv.Itoa(len(s.MixedStates)))
	}

	var sb strings.Builder
	sb.WriteString(t.View(styles))
	sb.WriteString("\n")
	sb.WriteString(Status(s, styles))
	sb.WriteString("\n")
	return sb.String()
}

// Status is the one-line verdict for a run.
func Status(s engine.Summary, styles Styles) string {
	switch {
	case s.EmergedAt > 0:
		return styles.Conscious.Render(fmt.Sprintf("● first conscious at step %d", s.EmergedAt))
	case !s.MemoryEnabled:
		return styles.Unconscious.Render("○ no memory, no self")
	default:
		return styles.Unconscious.Render("○ no conscious step yet")
	}
}

// History renders self-strength and sync sparklines.
func History(h engine.History, width int, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Muted.Render("self "))
	sb.WriteString(styles.Info.Render(Sparkline(h.SelfStrength, width)))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("sync "))
	sb.WriteString(styles.Info.Render(Sparkline(h.Sync, width)))
	sb.WriteString("\n")
	return sb.String()
}

// MixedStates lists at most limit mixed-state events.
func MixedStates(states []engine.MixedState, limit int, styles Styles) string {
	if len(states) == 0 {
		return ""
	}
	t := NewTable(fmt.Sprintf("mixed states (%d)", len(states)), "step", "stimulus", "raw", "clamped", "mixed")
	for i, m := range states {
		if limit > 0 && i >= limit {
			break
		}
		t.AddRow(strconv.Itoa(m.Step), string(m.Stimulus),
			fmt.Sprintf("%.1f", m.Raw), fmt.Sprintf("%.2f", m.Clamped), fmt.Sprintf("%.2f", m.Mixed))
	}
	out := t.View(styles)
	if limit > 0 && len(states) > limit {
		out += styles.Muted.Render(fmt.Sprintf("... %d more", len(states)-limit)) + "\n"
	}
	return out
}

// Comparison renders one row per case.
func Comparison(c *experiment.Comparison, styles Styles) string {
	t := NewTable(fmt.Sprintf("%s comparison (%d steps)", c.Name, c.Steps),
		"case", "vocab", "rate", "first conscious", "self then", "final self", "language")
	for _, r := range c.Results {
		s := r.Summary
		selfAt := "-"
		if s.EmergedAt > 0 {
			selfAt = fmt.Sprintf("%.4f", s.SelfStrengthAtEmergence)
		}
		t.AddRow(r.Label, strconv.Itoa(s.Vocabulary), percent(s.ConsciousnessRate),
			StepLabel(s.EmergedAt), selfAt, fmt.Sprintf("%.4f", s.FinalSelfStrength),
			StepLabel(s.LanguageAcquiredAt))
	}
	return t.View(styles)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
