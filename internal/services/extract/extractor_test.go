// File: internal/services/extract/extractor_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiseaseNameKnownShapes(t *testing.T) {
	tests := []struct {
		name       string
		serialized string
		want       string
	}{
		{"disease key", `{"disease":"eczema","severity":"mild"}`, "eczema"},
		{"array of name objects", `[{"name":"psoriasis"},{"name":"dermatitis"}]`, "psoriasis"},
		{"array of disease objects", `[{"disease":"urticaria"}]`, "urticaria"},
		{"name key", `{"name":"acne"}`, "acne"},
		{"diagnosis key", `{"diagnosis":"influenza"}`, "influenza"},
		{"result key", `{"result":"migraine"}`, "migraine"},
		{"possibleDiseases list", `{"possibleDiseases":[{"name":"tinea","confidence":0.8}],"needDoctor":true}`, "tinea"},
		{"possibleDiseases disease key", `{"possibleDiseases":[{"disease":"herpes"}]}`, "herpes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiseaseName(tt.serialized)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiseaseNameKeyPrecedence(t *testing.T) {
	// "disease" wins whenever it is present alongside other keys.
	got, ok := DiseaseName(`{"name":"wrong","disease":"eczema","result":"also wrong"}`)
	assert.True(t, ok)
	assert.Equal(t, "eczema", got)
}

func TestDiseaseNameUnrecognized(t *testing.T) {
	tests := []struct {
		name       string
		serialized string
	}{
		{"empty string", ""},
		{"malformed json", `{"disease":`},
		{"plain prose", "the patient most likely has eczema"},
		{"scalar", `42`},
		{"empty array", `[]`},
		{"array of scalars", `["eczema"]`},
		{"object without known keys", `{"severity":"mild","suggestion":"rest"}`},
		{"empty disease value", `{"disease":""}`},
		{"possibleDiseases without names", `{"possibleDiseases":[{"confidence":0.8}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiseaseName(tt.serialized)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}
