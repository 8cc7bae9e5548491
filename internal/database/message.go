package database

import (
	"github.com/google/uuid"
	"github.com/meunion/campus-match/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// GetMatchMessages возвращает переписку пары от старых к новым
func (d *Database) GetMatchMessages(matchID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}

// MarkMessagesRead помечает прочитанными все непрочитанные сообщения
// пары, отправленные НЕ читателем. Свои сообщения не трогаются
func (d *Database) MarkMessagesRead(matchID, readerID uuid.UUID) (int64, error) {
	res := d.db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND read = ?", matchID, readerID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// CountUnread считает непрочитанные сообщения для пользователя по паре
func (d *Database) CountUnread(matchID, userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND read = ?", matchID, userID, false).
		Count(&count).Error
	return count, err
}
