// File: internal/services/extract/extractor.go

// Package extract re-derives structured fields from persisted diagnosis
// results. Records were written under several generations of result
// shapes, so extraction probes each known shape in a fixed order.
package extract

import "encoding/json"

// DiseaseName extracts the primary disease name from a serialized
// diagnosis result. The second return value is false when the payload
// is malformed JSON or matches none of the known legacy shapes; callers
// skip such records and keep going.
//
// Shapes probed, in order:
//  1. {"disease": "x", ...}
//  2. [{"name": "x"}, ...] or [{"disease": "x"}, ...]
//  3. {"name": "x", ...}
//  4. {"diagnosis": "x", ...}
//  5. {"result": "x", ...}
//  6. {"possibleDiseases": [{"name": "x", "confidence": 0.8}], ...}
func DiseaseName(serialized string) (string, bool) {
	if serialized == "" {
		return "", false
	}

	var root interface{}
	if err := json.Unmarshal([]byte(serialized), &root); err != nil {
		return "", false
	}

	switch doc := root.(type) {
	case map[string]interface{}:
		return diseaseFromObject(doc)
	case []interface{}:
		return diseaseFromArray(doc)
	default:
		return "", false
	}
}

func diseaseFromObject(doc map[string]interface{}) (string, bool) {
	for _, key := range []string{"disease", "name", "diagnosis", "result"} {
		if name, ok := doc[key].(string); ok && name != "" {
			return name, true
		}
	}
	if list, ok := doc["possibleDiseases"].([]interface{}); ok {
		return diseaseFromArray(list)
	}
	return "", false
}

func diseaseFromArray(list []interface{}) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	first, ok := list[0].(map[string]interface{})
	if !ok {
		return "", false
	}
	if name, ok := first["name"].(string); ok && name != "" {
		return name, true
	}
	if name, ok := first["disease"].(string); ok && name != "" {
		return name, true
	}
	return "", false
}
