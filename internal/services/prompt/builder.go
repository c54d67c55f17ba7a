// File: internal/services/prompt/builder.go

// Package prompt assembles the natural-language prompts sent to
// inference providers. Builders are pure functions over their inputs:
// no I/O, no errors, missing optional fields are simply omitted.
package prompt

import (
	"strconv"
	"strings"
)

// ClinicalContext is the immutable patient snapshot a prompt is built
// from. All fields except ChiefComplaint are optional.
type ClinicalContext struct {
	PatientName    string
	Gender         string
	Age            int
	ChiefComplaint string
	Symptoms       []string
	PresentIllness string
	AllergyHistory string
	PastHistory    string
}

// visionSchema is the fixed output contract appended to vision prompts.
// The normalizer and the historical extractor both read these exact
// field names back, so the template must not drift.
const visionSchema = `Respond with a single JSON object in exactly this shape:
{
  "possibleDiseases": [{"name": "...", "confidence": 0.0}],
  "features": "...",
  "severity": "mild|moderate|severe|needs-attention",
  "suggestion": "...",
  "needDoctor": true,
  "urgency": "routine|prompt|emergency"
}`

// DiagnosisPrompt builds the text-diagnosis prompt. Section order is
// fixed; empty sections are left out entirely.
func DiagnosisPrompt(cc ClinicalContext) string {
	var b strings.Builder
	b.WriteString("You are an experienced physician. Analyze the following patient presentation and provide a diagnostic assessment.\n\n")

	if cc.PatientName != "" {
		b.WriteString("[Patient] ")
		b.WriteString(cc.PatientName)
		b.WriteString("\n")
	}
	if cc.Gender != "" || cc.Age > 0 {
		b.WriteString("[Sex/Age] ")
		b.WriteString(cc.Gender)
		if cc.Age > 0 {
			b.WriteString(", ")
			b.WriteString(strconv.Itoa(cc.Age))
			b.WriteString(" years old")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n[Chief Complaint]\n")
	b.WriteString(cc.ChiefComplaint)
	b.WriteString("\n")

	if len(cc.Symptoms) > 0 {
		b.WriteString("\n[Symptoms]\n")
		for _, s := range cc.Symptoms {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	writeSection(&b, "Present Illness", cc.PresentIllness)
	writeSection(&b, "Allergy History", cc.AllergyHistory)
	writeSection(&b, "Past History", cc.PastHistory)

	b.WriteString("\nProvide:\n")
	b.WriteString("1. Possible diagnoses ordered by probability\n")
	b.WriteString("2. Diagnostic reasoning\n")
	b.WriteString("3. Recommended examinations\n")
	b.WriteString("4. Treatment suggestions\n")
	b.WriteString("5. Precautions\n")
	b.WriteString("6. Whether an in-person visit is needed and how urgent it is\n")
	return b.String()
}

// ChatPrompt wraps a free-form patient question for the consultation
// chat path.
func ChatPrompt(message string) string {
	return "You are a professional medical assistant. Answer the patient's question accurately and in plain language. " +
		"If the question suggests an emergency, advise the patient to seek immediate care.\n\n" +
		"Patient question: " + message
}

// VisionPrompt builds the image-analysis prompt and appends the fixed
// JSON output contract.
func VisionPrompt(description string) string {
	var b strings.Builder
	b.WriteString("You are a dermatologist. Examine the attached skin images and describe what you observe.\n")
	if description != "" {
		b.WriteString("\n[Patient Description]\n")
		b.WriteString(description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(visionSchema)
	return b.String()
}

func writeSection(b *strings.Builder, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.WriteString("\n[")
	b.WriteString(label)
	b.WriteString("]\n")
	b.WriteString(text)
	b.WriteString("\n")
}
