package database

import (
	"github.com/google/uuid"
	"github.com/meunion/campus-match/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const candidateLimit = 20

// GetCandidates возвращает до limit анкет для ленты свайпов: без самого
// пользователя, без уже свайпнутых (в любую сторону), только заполненные
// профили, с фильтром по полу, новые первыми. Исключение через подзапрос,
// поэтому пустая история свайпов не ломает фильтр
func (d *Database) GetCandidates(userID uuid.UUID, preference string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > candidateLimit {
		limit = candidateLimit
	}

	swiped := d.db.Model(&models.Swipe{}).
		Select("swiped_id").
		Where("swiper_id = ?", userID)

	query := d.db.
		Where("id <> ?", userID).
		Where("id NOT IN (?)", swiped).
		Where("profile_complete = ?", true)

	if preference != "" && preference != models.PreferenceEveryone {
		query = query.Where("gender = ?", preference)
	}

	var users []models.User
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error

	return users, err
}

// RecordSwipe атомарно записывает свайп и материализует пару.
// Вставка, проверка встречного right-свайпа и создание записи в matches
// идут одной транзакцией под advisory-блокировкой пары, так что
// одновременные взаимные свайпы не могут оба получить "пары ещё нет".
// Повторный свайп по той же паре — no-op
// (ON CONFLICT DO NOTHING), и пара в этом случае не репортится повторно
func (d *Database) RecordSwipe(swiperID, swipedID uuid.UUID, direction string) (bool, *models.Match, error) {
	if swiperID == swipedID {
		return false, nil, ErrSelfSwipe
	}
	if direction != models.DirectionLeft && direction != models.DirectionRight {
		return false, nil, ErrInvalidDirection
	}

	var (
		matched bool
		match   models.Match
	)

	err := d.db.Transaction(func(tx *gorm.DB) error {
		// Сериализуем взаимные свайпы по паре: под READ COMMITTED обе
		// встречные транзакции иначе считают reverse до чужого коммита,
		// обе видят ноль и пару не создаёт никто. sqlite в тестах пишет
		// последовательно, ему блокировка не нужна
		if tx.Dialector.Name() == "postgres" {
			err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtextextended(?, 0))",
				pairLockKey(swiperID, swipedID),
			).Error
			if err != nil {
				return err
			}
		}

		swipe := models.Swipe{
			SwiperID:  swiperID,
			SwipedID:  swipedID,
			Direction: direction,
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "swiped_id"}},
			DoNothing: true,
		}).Create(&swipe)
		if res.Error != nil {
			return res.Error
		}

		// Дубликат: решение уже записано, пара уже отрепорчена раньше
		if res.RowsAffected == 0 || direction != models.DirectionRight {
			return nil
		}

		var reverse int64
		err := tx.Model(&models.Swipe{}).
			Where("swiper_id = ? AND swiped_id = ? AND direction = ?",
				swipedID, swiperID, models.DirectionRight).
			Count(&reverse).Error
		if err != nil {
			return err
		}
		if reverse == 0 {
			return nil
		}

		id1, id2 := models.NormalizePair(swiperID, swipedID)
		match = models.Match{UserID1: id1, UserID2: id2}
		if err := tx.Where("user_id_1 = ? AND user_id_2 = ?", id1, id2).
			FirstOrCreate(&match).Error; err != nil {
			return err
		}

		matched = true
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	if !matched {
		return false, nil, nil
	}
	return true, &match, nil
}

// pairLockKey — ключ advisory-блокировки, одинаковый для обоих
// направлений пары
func pairLockKey(a, b uuid.UUID) string {
	id1, id2 := models.NormalizePair(a, b)
	return id1.String() + ":" + id2.String()
}

// GetLikers возвращает тех, кто свайпнул пользователя вправо,
// но взаимной пары ещё нет
func (d *Database) GetLikers(userID uuid.UUID) ([]models.User, error) {
	likers := d.db.Model(&models.Swipe{}).
		Select("swiper_id").
		Where("swiped_id = ? AND direction = ?", userID, models.DirectionRight)

	matched1 := d.db.Model(&models.Match{}).
		Select("user_id_1").
		Where("user_id_2 = ?", userID)
	matched2 := d.db.Model(&models.Match{}).
		Select("user_id_2").
		Where("user_id_1 = ?", userID)

	var users []models.User
	err := d.db.
		Where("id IN (?)", likers).
		Where("id NOT IN (?)", matched1).
		Where("id NOT IN (?)", matched2).
		Order("created_at DESC").
		Find(&users).Error

	return users, err
}
