package models

import "time"

// Enrollment is the authoritative per-student record for an academic term.
// At most one non-archived enrollment per user is treated as current.
type Enrollment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	StudentNumber   string    `gorm:"size:32;not null" json:"student_number"`
	FirstName       string    `gorm:"size:128;not null" json:"first_name"`
	MiddleName      string    `gorm:"size:128" json:"middle_name"`
	LastName        string    `gorm:"size:128;not null" json:"last_name"`
	Suffix          string    `gorm:"size:32" json:"suffix"`
	Email           string    `gorm:"size:255" json:"email"`
	Address         string    `gorm:"size:512" json:"address"`
	GuardianName    string    `gorm:"size:255" json:"guardian_name"`
	GuardianContact string    `gorm:"size:64" json:"guardian_contact"`
	GradeLevelID    *uint     `json:"grade_level_id"`
	TrackID         *uint     `json:"track_id"`
	StrandID        *uint     `json:"strand_id"`
	Archived        bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
