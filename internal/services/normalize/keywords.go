// File: internal/services/normalize/keywords.go
package normalize

// Vocabulary for the heuristic fallback. Order matters: the first
// keyword found in the text wins, so more specific terms come first.

// placeholderCondition is emitted when prose matched no known term.
const placeholderCondition = "unidentified condition"

type conditionKeyword struct {
	name  string
	terms []string
}

// Dermatologic terms lead because the image-analysis path is the main
// producer of prose-only answers.
var conditionKeywords = []conditionKeyword{
	{"eczema", []string{"湿疹", "eczema"}},
	{"psoriasis", []string{"银屑病", "牛皮癣", "psoriasis"}},
	{"urticaria", []string{"荨麻疹", "urticaria", "hives"}},
	{"acne", []string{"痤疮", "粉刺", "acne"}},
	{"dermatitis", []string{"皮炎", "dermatitis"}},
	{"tinea", []string{"癣", "真菌感染", "tinea", "ringworm", "fungal infection"}},
	{"herpes", []string{"疱疹", "herpes"}},
	{"allergic reaction", []string{"过敏", "allergy", "allergic"}},
	{"upper respiratory infection", []string{"感冒", "上呼吸道感染", "common cold", "respiratory infection"}},
	{"influenza", []string{"流感", "influenza", "flu"}},
	{"gastroenteritis", []string{"肠胃炎", "胃肠炎", "gastroenteritis"}},
	{"hypertension", []string{"高血压", "hypertension"}},
	{"diabetes", []string{"糖尿病", "diabetes"}},
	{"migraine", []string{"偏头痛", "migraine"}},
}

type severityKeyword struct {
	severity Severity
	terms    []string
}

// Severe outranks the infection rule, which in turn outranks the
// milder grades.
var severityKeywords = []severityKeyword{
	{SeveritySevere, []string{"严重", "重度", "severe", "serious"}},
	{SeverityNeedsAttention, []string{"感染", "炎症", "infection", "inflammation"}},
	{SeverityModerate, []string{"中度", "moderate"}},
	{SeverityMild, []string{"轻微", "轻度", "mild", "slight"}},
}

type urgencyKeyword struct {
	urgency Urgency
	terms   []string
}

var urgencyKeywords = []urgencyKeyword{
	{UrgencyEmergency, []string{"紧急", "立即就医", "急诊", "emergency", "immediate"}},
	{UrgencyPrompt, []string{"就医", "就诊", "see a doctor", "consult a doctor", "medical attention"}},
	{UrgencyRoutine, []string{"观察", "随访", "observ", "monitor"}},
}
