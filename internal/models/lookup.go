package models

// GradeLevel maps a grade level id to its human-readable code.
type GradeLevel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:64;not null" json:"code"`
}

// Track maps an academic track id to its human-readable code.
type Track struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:64;not null" json:"code"`
}

// Strand maps a strand id to its human-readable code.
type Strand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:64;not null" json:"code"`
}
