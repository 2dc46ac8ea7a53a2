package domain

import "time"

// Result Model
//
// A result is written once by the result workflow and never updated or
// deleted. Patient and Doctor are non-owning references into the users table.
type Result struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                // Primary key
	Date           time.Time `gorm:"type:date" json:"date"`               // Set server-side at creation
	Confidence     float32   `json:"confidence"`                          // Classifier score, no enforced range
	Classification string    `gorm:"size:255" json:"classification"`      // Free-text label
	ModelUsed      string    `gorm:"size:255" json:"modelUsed"`           // Model identifier
	Notes          string    `gorm:"size:2000" json:"notes"`              // Free text, bounded length
	PatientID      uint      `gorm:"index;not null" json:"-"`             // Foreign key to the patient
	DoctorID       uint      `gorm:"index;not null" json:"-"`             // Foreign key to the doctor
	Patient        User      `gorm:"foreignKey:PatientID" json:"patient"` // Resolved patient record
	Doctor         User      `gorm:"foreignKey:DoctorID" json:"doctor"`   // Resolved doctor record
}
