package dto

import "time"

// Placeholder is the label shown when a value is absent.
const Placeholder = "—"

// ProfileResponse combines the locked display fields with the editable
// subset of a student's current enrollment.
type ProfileResponse struct {
	RecordID        uint      `json:"record_id"`
	FullName        string    `json:"full_name"`
	StudentNumber   string    `json:"student_number"`
	Email           string    `json:"email"`
	GradeLevel      string    `json:"grade_level"`
	Track           string    `json:"track"`
	Strand          string    `json:"strand"`
	Address         string    `json:"address"`
	GuardianName    string    `json:"guardian_name"`
	GuardianContact string    `json:"guardian_contact"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfileUpdateRequest carries the editable enrollment fields plus the
// record identifier captured at load time. Identity fields are never
// accepted here.
type ProfileUpdateRequest struct {
	RecordID        uint   `json:"record_id"`
	Address         string `json:"address" validate:"omitempty,max=512"`
	GuardianName    string `json:"guardian_name" validate:"omitempty,max=255"`
	GuardianContact string `json:"guardian_contact" validate:"omitempty,max=64"`
}
