package database

import (
	"github.com/google/uuid"
	"github.com/meunion/campus-match/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) UpdateUser(user *models.User) error {
	user.ProfileComplete = user.IsProfileComplete()
	return d.db.Save(user).Error
}

// GetUser возвращает пользователя вместе с интересами и клубами
func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	err := d.db.Preload("Interests").Preload("Clubs").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByPhone(phone string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser жёстко удаляет аккаунт и всё, что на него ссылается
func (d *Database) DeleteUser(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&user).Association("Interests").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Clubs").Clear(); err != nil {
			return err
		}

		if err := tx.Delete(&models.Swipe{}, "swiper_id = ? OR swiped_id = ?", id, id).Error; err != nil {
			return err
		}

		var matches []models.Match
		if err := tx.Where("user_id_1 = ? OR user_id_2 = ?", id, id).Find(&matches).Error; err != nil {
			return err
		}
		for _, m := range matches {
			if err := tx.Delete(&models.Message{}, "match_id = ?", m.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Match{}, "user_id_1 = ? OR user_id_2 = ?", id, id).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

func (d *Database) UpdateSettings(id uuid.UUID, settings map[string]string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).
		Update("settings", settings).Error
}

// SetLocation сохраняет координаты и ближайший корпус
func (d *Database) SetLocation(id uuid.UUID, building string, lat, lng float64) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"building":  building,
		"latitude":  lat,
		"longitude": lng,
	}).Error
}

// AddPhoto добавляет URL фото в конец списка, не больше MaxPhotos
func (d *Database) AddPhoto(id uuid.UUID, url string) ([]string, error) {
	var user models.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(user.Photos) >= models.MaxPhotos {
		return user.Photos, ErrPhotoLimit
	}

	user.Photos = append(user.Photos, url)
	if err := d.UpdateUser(&user); err != nil {
		return nil, err
	}
	return user.Photos, nil
}

// RemovePhoto убирает URL из списка. Отсутствующий URL — no-op
func (d *Database) RemovePhoto(id uuid.UUID, url string) ([]string, error) {
	var user models.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	photos := make([]string, 0, len(user.Photos))
	for _, p := range user.Photos {
		if p != url {
			photos = append(photos, p)
		}
	}

	if len(photos) == len(user.Photos) {
		return user.Photos, nil
	}

	user.Photos = photos
	if err := d.UpdateUser(&user); err != nil {
		return nil, err
	}
	return user.Photos, nil
}

// ReplaceInterests сверяет связи по именам: справочные записи создаются
// по требованию, старые связи удаляются, новые вставляются. Ошибка на
// отдельном имени логируется и пропускается, пакет не откатывается
func (d *Database) ReplaceInterests(id uuid.UUID, names []string) error {
	var user models.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return err
	}

	if err := d.db.Model(&user).Association("Interests").Clear(); err != nil {
		return err
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		interest := models.Interest{Name: name}
		if err := d.db.Where("name = ?", name).FirstOrCreate(&interest).Error; err != nil {
			log.Warn().Err(err).Str("interest", name).Msg("skipping interest")
			continue
		}
		if err := d.db.Model(&user).Association("Interests").Append(&interest); err != nil {
			log.Warn().Err(err).Str("interest", name).Msg("skipping interest link")
		}
	}

	return nil
}

func (d *Database) ReplaceClubs(id uuid.UUID, names []string) error {
	var user models.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return err
	}

	if err := d.db.Model(&user).Association("Clubs").Clear(); err != nil {
		return err
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		club := models.Club{Name: name}
		if err := d.db.Where("name = ?", name).FirstOrCreate(&club).Error; err != nil {
			log.Warn().Err(err).Str("club", name).Msg("skipping club")
			continue
		}
		if err := d.db.Model(&user).Association("Clubs").Append(&club); err != nil {
			log.Warn().Err(err).Str("club", name).Msg("skipping club link")
		}
	}

	return nil
}
