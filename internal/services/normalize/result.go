// File: internal/services/normalize/result.go
package normalize

import "encoding/json"

// Severity of the observed condition.
type Severity string

const (
	SeverityUnspecified    Severity = ""
	SeverityMild           Severity = "mild"
	SeverityModerate       Severity = "moderate"
	SeveritySevere         Severity = "severe"
	SeverityNeedsAttention Severity = "needs-attention"
)

// Urgency of seeking in-person care.
type Urgency string

const (
	UrgencyUnspecified Urgency = ""
	UrgencyRoutine     Urgency = "routine"
	UrgencyPrompt      Urgency = "prompt"
	UrgencyEmergency   Urgency = "emergency"
)

// Default confidence values used when the provider gives a name without
// a probability.
const (
	defaultConfidenceJSON      = 0.6
	defaultConfidenceHeuristic = 0.5
)

// Condition is one candidate diagnosis with its confidence in [0,1].
type Condition struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Result is the canonical diagnosis shape every caller relies on,
// whatever the provider actually returned. The JSON field names match
// the schema the vision prompt asks providers for, so a serialized
// Result round-trips through Normalize.
type Result struct {
	PossibleConditions []Condition `json:"possibleDiseases"`
	Findings           string      `json:"features"`
	Severity           Severity    `json:"severity"`
	Recommendation     string      `json:"suggestion"`
	NeedsClinician     bool        `json:"needDoctor"`
	Urgency            Urgency     `json:"urgency"`
	Raw                string      `json:"raw,omitempty"`

	// Degraded marks a result produced by the heuristic fallback. It is
	// a signal, not a failure, and is never persisted.
	Degraded bool `json:"-"`
}

// Serialize renders the result for persistence. Marshal on this shape
// cannot fail; the error return keeps call sites honest anyway.
func (r *Result) Serialize() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TopCondition returns the highest-ranked condition name, or "" when
// the list is empty.
func (r *Result) TopCondition() string {
	if len(r.PossibleConditions) == 0 {
		return ""
	}
	return r.PossibleConditions[0].Name
}
