package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match — ненаправленная пара после взаимных right-свайпов.
// Пара хранится нормализованной: UserID1 < UserID2
type Match struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID1   uuid.UUID `gorm:"type:uuid;column:user_id_1;not null;uniqueIndex:idx_matches_pair"`
	UserID2   uuid.UUID `gorm:"type:uuid;column:user_id_2;not null;uniqueIndex:idx_matches_pair"`
	CreatedAt time.Time

	Messages []Message `gorm:"foreignKey:MatchID"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OtherUser возвращает второго участника пары
func (m *Match) OtherUser(userID uuid.UUID) uuid.UUID {
	if m.UserID1 == userID {
		return m.UserID2
	}
	return m.UserID1
}

// HasParticipant проверяет участие пользователя в паре
func (m *Match) HasParticipant(userID uuid.UUID) bool {
	return m.UserID1 == userID || m.UserID2 == userID
}

// NormalizePair упорядочивает пару id для уникального ключа
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
