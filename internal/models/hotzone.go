package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HotZone — именованная точка кампуса со счётчиком активных пользователей
type HotZone struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Building    string    `gorm:"index"`
	ActiveCount int       `gorm:"default:0"`

	Events []HotZoneEvent `gorm:"foreignKey:HotZoneID"`
}

func (z *HotZone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}

type HotZoneEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HotZoneID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	StartsAt    time.Time
}

func (e *HotZoneEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
