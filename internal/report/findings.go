package report

import (
	"fmt"
	"strings"

	"innermotion/internal/engine"
	"innermotion/internal/experiment"

	"github.com/charmbracelet/glamour"
)

// Findings writes the observations a comparison supports as markdown.
func Findings(c *experiment.Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Findings: %s\n\n", c.Name)
	fmt.Fprintf(&sb, "%d runs of %d steps each.\n\n", len(c.Results), c.Steps)

	if len(c.Results) == 0 {
		return sb.String()
	}

	earliest, best := -1, 0
	var never []string
	for i, r := range c.Results {
		s := r.Summary
		if s.EmergedAt == 0 {
			never = append(never, r.Label)
		} else if earliest < 0 || s.EmergedAt < c.Results[earliest].Summary.EmergedAt {
			earliest = i
		}
		if s.ConsciousnessRate > c.Results[best].Summary.ConsciousnessRate {
			best = i
		}
	}

	if earliest >= 0 {
		r := c.Results[earliest]
		fmt.Fprintf(&sb, "- **%s** became conscious first, at step %d with %d stimulus types.\n",
			r.Label, r.Summary.EmergedAt, r.Summary.Vocabulary)
	}
	r := c.Results[best]
	fmt.Fprintf(&sb, "- **%s** was conscious most often: %s of steps.\n", r.Label, percent(r.Summary.ConsciousnessRate))
	for _, label := range never {
		fmt.Fprintf(&sb, "- **%s** never reached the conscious state.\n", label)
	}
	for _, r := range c.Results {
		if !r.Summary.MemoryEnabled {
			fmt.Fprintf(&sb, "- **%s** ran without memory; self-strength stayed at %.3f.\n",
				r.Label, r.Summary.FinalSelfStrength)
		}
	}
	return sb.String()
}

// RunFindings writes the observations one run supports as markdown.
func RunFindings(s engine.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Findings: %s\n\n", s.Variant)
	switch {
	case s.EmergedAt > 0:
		fmt.Fprintf(&sb, "- First conscious step at %d (self-strength %.3f).\n", s.EmergedAt, s.SelfStrengthAtEmergence)
		fmt.Fprintf(&sb, "- Consciousness was intermittent: %s of %d steps.\n", percent(s.ConsciousnessRate), s.Steps)
	case !s.MemoryEnabled:
		sb.WriteString("- Without memory the self never formed.\n")
	default:
		fmt.Fprintf(&sb, "- No conscious step in %d steps; self-strength reached %.3f.\n", s.Steps, s.FinalSelfStrength)
	}
	if s.LanguageAcquired {
		fmt.Fprintf(&sb, "- Language arrived at step %d.\n", s.LanguageAcquiredAt)
	}
	if n := len(s.MixedStates); n > 0 {
		fmt.Fprintf(&sb, "- %d mixed states: overflow beyond the valuation range turned pain into something else.\n", n)
	}
	return sb.String()
}

// RenderMarkdown renders md for the terminal. style is a glamour style name
// ("dark", "light", "notty"); empty selects one from the terminal.
func RenderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
