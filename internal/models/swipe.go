package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Swipe — направленное решение like/pass. На упорядоченную пару
// (swiper, swiped) допускается не больше одной записи
type Swipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SwiperID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_pair"`
	SwipedID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_pair"`
	Direction string    `gorm:"not null;check:direction IN ('left','right')"`
	CreatedAt time.Time
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
