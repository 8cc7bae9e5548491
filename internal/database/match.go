package database

import (
	"github.com/google/uuid"
	"github.com/meunion/campus-match/internal/models"
)

// MatchSummary — пара, второй участник, последнее сообщение и
// число непрочитанных от него
type MatchSummary struct {
	Match       models.Match
	Other       models.User
	LastMessage *models.Message
	UnreadCount int64
}

func (d *Database) GetMatch(id string) (*models.Match, error) {
	var match models.Match
	if err := d.db.First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// GetMatchesForUser собирает список пар одним набором батч-запросов:
// сами пары, вторые участники, последние сообщения (коррелированный
// подзапрос по max(created_at)) и группировка непрочитанных. Никаких
// запросов в цикле по каждой паре
func (d *Database) GetMatchesForUser(userID uuid.UUID) ([]MatchSummary, error) {
	var matches []models.Match
	err := d.db.
		Where("user_id_1 = ? OR user_id_2 = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []MatchSummary{}, nil
	}

	matchIDs := make([]uuid.UUID, 0, len(matches))
	otherIDs := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
		otherIDs = append(otherIDs, m.OtherUser(userID))
	}

	var others []models.User
	if err := d.db.Where("id IN ?", otherIDs).Find(&others).Error; err != nil {
		return nil, err
	}
	otherByID := make(map[uuid.UUID]models.User, len(others))
	for _, u := range others {
		otherByID[u.ID] = u
	}

	var lastMessages []models.Message
	err = d.db.
		Where("match_id IN ?", matchIDs).
		Where("created_at = (SELECT MAX(m2.created_at) FROM messages m2 WHERE m2.match_id = messages.match_id)").
		Find(&lastMessages).Error
	if err != nil {
		return nil, err
	}
	lastByMatch := make(map[uuid.UUID]models.Message, len(lastMessages))
	for _, m := range lastMessages {
		lastByMatch[m.MatchID] = m
	}

	type unreadRow struct {
		MatchID uuid.UUID
		Count   int64
	}
	var unread []unreadRow
	err = d.db.Model(&models.Message{}).
		Select("match_id, COUNT(*) AS count").
		Where("match_id IN ? AND sender_id <> ? AND read = ?", matchIDs, userID, false).
		Group("match_id").
		Scan(&unread).Error
	if err != nil {
		return nil, err
	}
	unreadByMatch := make(map[uuid.UUID]int64, len(unread))
	for _, row := range unread {
		unreadByMatch[row.MatchID] = row.Count
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summary := MatchSummary{
			Match:       m,
			Other:       otherByID[m.OtherUser(userID)],
			UnreadCount: unreadByMatch[m.ID],
		}
		if last, ok := lastByMatch[m.ID]; ok {
			msg := last
			summary.LastMessage = &msg
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// CountMatchesInBuilding считает пары пользователя, чей второй участник
// сейчас в указанном корпусе. Реальный агрегат для "matches nearby"
func (d *Database) CountMatchesInBuilding(userID uuid.UUID, building string) (int64, error) {
	if building == "" {
		return 0, nil
	}

	var count int64
	err := d.db.Model(&models.Match{}).
		Joins("JOIN users u ON (u.id = matches.user_id_1 AND matches.user_id_2 = ?) OR (u.id = matches.user_id_2 AND matches.user_id_1 = ?)",
			userID, userID).
		Where("u.building = ?", building).
		Count(&count).Error

	return count, err
}
