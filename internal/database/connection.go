package database

import (
	"errors"

	"github.com/meunion/campus-match/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	d.db = db

	return d.SeedReferenceData()
}

// Migrate прогоняет автомиграцию всех сущностей
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Interest{},
		&models.Club{},
		&models.Swipe{},
		&models.Match{},
		&models.Message{},
		&models.HotZone{},
		&models.HotZoneEvent{},
		&models.CampusBuilding{},
		&models.Report{},
	)
}
