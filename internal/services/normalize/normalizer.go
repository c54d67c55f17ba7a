// File: internal/services/normalize/normalizer.go
package normalize

import (
	"encoding/json"
	"strings"
)

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Normalizer turns raw provider output into a canonical Result. It is
// a total function over strings: every input produces a Result, in the
// worst case a degraded one built by the heuristic fallback.
type Normalizer struct {
	logger     Logger
	strategies []strategy
}

type strategy struct {
	name string
	// apply returns nil when the strategy does not recognize the body.
	apply func(body string) *Result
}

func NewNormalizer(logger Logger) *Normalizer {
	n := &Normalizer{logger: logger}
	n.strategies = []strategy{
		{name: "json", apply: fromWholeJSON},
		{name: "embedded_json", apply: fromEmbeddedJSON},
		{name: "heuristic", apply: fromProse},
	}
	return n
}

// Normalize evaluates the strategy cascade in order; the first strategy
// that recognizes the body wins and no fields are mixed across
// strategies. The untouched body is always kept in Result.Raw.
func (n *Normalizer) Normalize(raw string) *Result {
	body := strings.TrimSpace(raw)
	for _, s := range n.strategies {
		res := s.apply(body)
		if res == nil {
			continue
		}
		res.Raw = raw
		if res.Degraded {
			n.logger.Debug("normalization degraded to heuristic extraction",
				"findings_len", len(res.Findings))
		}
		return res
	}
	// Unreachable: the heuristic strategy accepts every input.
	return &Result{NeedsClinician: true, Raw: raw, Degraded: true}
}

// fromWholeJSON handles bodies that are entirely a JSON document with a
// recognizable field set.
func fromWholeJSON(body string) *Result {
	if body == "" {
		return nil
	}
	if body[0] != '{' && body[0] != '[' {
		return nil
	}
	return mapJSONDocument([]byte(body))
}

// fromEmbeddedJSON extracts the first balanced {...} substring that
// maps to a recognizable field set. Providers often wrap the JSON they
// were asked for in explanatory prose or a markdown fence. A brace
// that never closes is skipped, not fatal: the object may start later
// in the body.
func fromEmbeddedJSON(body string) *Result {
	for start := 0; start < len(body); start++ {
		open := strings.IndexByte(body[start:], '{')
		if open < 0 {
			return nil
		}
		start += open
		candidate, ok := balancedObject(body[start:])
		if !ok {
			continue
		}
		if res := mapJSONDocument([]byte(candidate)); res != nil {
			return res
		}
	}
	return nil
}

// balancedObject returns the shortest balanced {...} prefix of s,
// tolerating braces inside JSON string literals.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// mapJSONDocument maps a parsed JSON document onto a Result, returning
// nil when the document exposes none of the known field sets.
func mapJSONDocument(data []byte) *Result {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	switch doc := probe.(type) {
	case map[string]interface{}:
		return mapObject(doc)
	case []interface{}:
		return mapArray(doc)
	default:
		return nil
	}
}

// Single-name keys probed in order on a JSON object.
var singleNameKeys = []string{"disease", "diagnosis", "name", "result"}

func mapObject(doc map[string]interface{}) *Result {
	conditions := conditionsFromObject(doc)
	if conditions == nil {
		return nil
	}
	res := &Result{
		PossibleConditions: conditions,
		NeedsClinician:     true,
	}
	res.Findings = stringField(doc, "features")
	res.Recommendation = stringField(doc, "suggestion")
	res.Severity = parseSeverity(stringField(doc, "severity"))
	res.Urgency = parseUrgency(stringField(doc, "urgency"))
	if v, ok := doc["needDoctor"].(bool); ok {
		res.NeedsClinician = v
	}
	return res
}

func conditionsFromObject(doc map[string]interface{}) []Condition {
	if listVal, ok := doc["possibleDiseases"]; ok {
		if list, ok := listVal.([]interface{}); ok {
			if conditions := conditionsFromList(list); conditions != nil {
				return conditions
			}
		}
	}
	for _, key := range singleNameKeys {
		if name, ok := doc[key].(string); ok && name != "" {
			return []Condition{{Name: name, Confidence: defaultConfidenceJSON}}
		}
	}
	return nil
}

func mapArray(doc []interface{}) *Result {
	conditions := conditionsFromList(doc)
	if conditions == nil {
		return nil
	}
	return &Result{PossibleConditions: conditions, NeedsClinician: true}
}

func conditionsFromList(list []interface{}) []Condition {
	var conditions []Condition
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		if name == "" {
			name, _ = entry["disease"].(string)
		}
		if name == "" {
			continue
		}
		confidence := defaultConfidenceJSON
		if v, ok := entry["confidence"].(float64); ok && v > 0 && v <= 1 {
			confidence = v
		}
		conditions = append(conditions, Condition{Name: name, Confidence: confidence})
	}
	return conditions
}

func stringField(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func parseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild", "轻微", "轻度":
		return SeverityMild
	case "moderate", "中度":
		return SeverityModerate
	case "severe", "严重", "重度":
		return SeveritySevere
	case "needs-attention", "需要关注":
		return SeverityNeedsAttention
	default:
		return SeverityUnspecified
	}
}

func parseUrgency(s string) Urgency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "routine", "一般", "常规":
		return UrgencyRoutine
	case "prompt", "尽快", "尽快就医":
		return UrgencyPrompt
	case "emergency", "紧急", "急诊":
		return UrgencyEmergency
	default:
		return UrgencyUnspecified
	}
}

// maxFindingsRunes bounds the prose prefix kept as findings.
const maxFindingsRunes = 200

// fromProse is the heuristic fallback. It always produces a Result and
// marks it degraded.
func fromProse(body string) *Result {
	lower := strings.ToLower(body)

	res := &Result{
		NeedsClinician: true,
		Recommendation: body,
		Findings:       prefixRunes(body, maxFindingsRunes),
		Degraded:       true,
	}

	res.PossibleConditions = []Condition{{
		Name:       matchCondition(lower),
		Confidence: defaultConfidenceHeuristic,
	}}
	res.Severity = matchSeverity(lower)
	res.Urgency = matchUrgency(lower)
	return res
}

func matchCondition(lower string) string {
	for _, kw := range conditionKeywords {
		for _, term := range kw.terms {
			if strings.Contains(lower, term) {
				return kw.name
			}
		}
	}
	return placeholderCondition
}

func matchSeverity(lower string) Severity {
	for _, kw := range severityKeywords {
		for _, term := range kw.terms {
			if strings.Contains(lower, term) {
				return kw.severity
			}
		}
	}
	return SeverityUnspecified
}

func matchUrgency(lower string) Urgency {
	for _, kw := range urgencyKeywords {
		for _, term := range kw.terms {
			if strings.Contains(lower, term) {
				return kw.urgency
			}
		}
	}
	return UrgencyUnspecified
}

func prefixRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
