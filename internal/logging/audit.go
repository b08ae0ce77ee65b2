package logging

import (
	"sort"

	"go.uber.org/zap"
)

// AuditEventType names a run milestone.
type AuditEventType string

const (
	AuditRunStart       AuditEventType = "run_start"
	AuditRunEnd         AuditEventType = "run_end"
	AuditEmergence      AuditEventType = "consciousness_emerged"
	AuditLanguage       AuditEventType = "language_acquired"
	AuditMixedState     AuditEventType = "mixed_state"
	AuditExtremeDNA     AuditEventType = "extreme_dna"
	AuditRunInterrupted AuditEventType = "run_interrupted"
)

// AuditEvent is one milestone of a simulation run.
type AuditEvent struct {
	Type   AuditEventType
	RunID  string
	Step   int
	Fields map[string]interface{}
}

// AuditLogger writes milestone events for a single run to the audit category.
type AuditLogger struct {
	runID  string
	logger *Logger
}

// Audit returns an audit logger bound to runID.
func Audit(runID string) *AuditLogger {
	return &AuditLogger{runID: runID, logger: Get(CategoryAudit)}
}

// Log writes e as one structured entry. Field keys are emitted in sorted order.
func (a *AuditLogger) Log(e AuditEvent) {
	if e.RunID == "" {
		e.RunID = a.runID
	}
	fields := make([]zap.Field, 0, len(e.Fields)+3)
	fields = append(fields,
		zap.String("event", string(e.Type)),
		zap.String("run", e.RunID),
		zap.Int("step", e.Step),
	)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, e.Fields[k]))
	}
	a.logger.Zap().Info(string(e.Type), fields...)
}

// RunStart records the start of a run.
func (a *AuditLogger) RunStart(variant string, environment string, steps int) {
	a.Log(AuditEvent{Type: AuditRunStart, Fields: map[string]interface{}{
		"variant":     variant,
		"environment": environment,
		"steps":       steps,
	}})
}

// RunEnd records the final counters of a run.
func (a *AuditLogger) RunEnd(step, consciousSteps int, selfStrength float64) {
	a.Log(AuditEvent{Type: AuditRunEnd, Step: step, Fields: map[string]interface{}{
		"conscious_steps": consciousSteps,
		"self_strength":   selfStrength,
	}})
}

// RunInterrupted records a run stopped before its step budget.
func (a *AuditLogger) RunInterrupted(step int, err error) {
	a.Log(AuditEvent{Type: AuditRunInterrupted, Step: step, Fields: map[string]interface{}{
		"error": err.Error(),
	}})
}

// Emergence records the first conscious step.
func (a *AuditLogger) Emergence(step int, selfStrength, sync float64) {
	a.Log(AuditEvent{Type: AuditEmergence, Step: step, Fields: map[string]interface{}{
		"self_strength": selfStrength,
		"sync_score":    sync,
	}})
}

// LanguageAcquired records the step the language latch opened.
func (a *AuditLogger) LanguageAcquired(step int, selfStrength float64) {
	a.Log(AuditEvent{Type: AuditLanguage, Step: step, Fields: map[string]interface{}{
		"self_strength": selfStrength,
	}})
}

// MixedState records an overflow-driven mixed valuation.
func (a *AuditLogger) MixedState(step int, stimulus string, clamped, mixed, raw float64) {
	a.Log(AuditEvent{Type: AuditMixedState, Step: step, Fields: map[string]interface{}{
		"stimulus": stimulus,
		"clamped":  clamped,
		"mixed":    mixed,
		"raw":      raw,
	}})
}

// ExtremeDNA records an inherited value far outside the nominal range.
func (a *AuditLogger) ExtremeDNA(stimulus string, value float64) {
	a.Log(AuditEvent{Type: AuditExtremeDNA, Fields: map[string]interface{}{
		"stimulus": stimulus,
		"value":    value,
	}})
}
