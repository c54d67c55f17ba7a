// File: internal/domain/patient.go
package domain

import (
	"errors"
	"time"
)

// Gender codes follow the patient registry convention.
const (
	GenderFemale = 0
	GenderMale   = 1
)

// Patient holds the demographic and history fields the diagnosis
// pipeline needs. The full registry record is owned by the CRUD layer.
type Patient struct {
	ID             uint   `json:"id" gorm:"primarykey"`
	PatientNo      string `json:"patient_no" gorm:"uniqueIndex"`
	Name           string `json:"name" gorm:"not null"`
	Gender         int    `json:"gender"`
	Age            int    `json:"age"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	AllergyHistory string `json:"allergy_history"`
	PastHistory    string `json:"past_history"`
	FamilyHistory  string `json:"family_history"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Patient) IsValid() error {
	if p.Name == "" {
		return errors.New("patient name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return errors.New("patient age is out of range")
	}
	return nil
}

// GenderLabel returns the prompt-facing label for the patient's gender.
func (p *Patient) GenderLabel() string {
	if p.Gender == GenderMale {
		return "male"
	}
	return "female"
}
