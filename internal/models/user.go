package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PreferenceEveryone = "everyone"

	MaxPhotos = 6
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"index"`
	Phone        string    `gorm:"index"`
	PasswordHash string

	DisplayName      string `gorm:"not null"`
	ClassYear        string
	Role             string
	Vibe             string
	Intention        string
	Gender           string
	GenderPreference string `gorm:"default:'everyone'"`
	Bio              string
	Major            string

	// Последняя известная геопозиция и ближайший корпус
	Building  string `gorm:"index"`
	Latitude  float64
	Longitude float64

	Photos          []string          `gorm:"serializer:json"`
	Settings        map[string]string `gorm:"serializer:json"`
	ProfileComplete bool              `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	Interests []Interest `gorm:"many2many:user_interests"`
	Clubs     []Club     `gorm:"many2many:user_clubs"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsProfileComplete проверяет, заполнены ли обязательные поля анкеты:
// фото, био, специальность, пол и предпочтение по полу
func (u *User) IsProfileComplete() bool {
	return len(u.Photos) > 0 &&
		u.Bio != "" &&
		u.Major != "" &&
		u.Gender != "" &&
		u.GenderPreference != ""
}
