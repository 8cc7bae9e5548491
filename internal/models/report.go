package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReportedID uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason     string    `gorm:"not null"`
	Details    string
	CreatedAt  time.Time
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
