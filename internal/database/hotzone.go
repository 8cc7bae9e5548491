package database

import "github.com/meunion/campus-match/internal/models"

// GetHotZones возвращает зоны с вложенными событиями,
// по убыванию числа активных пользователей
func (d *Database) GetHotZones() ([]models.HotZone, error) {
	var zones []models.HotZone
	err := d.db.
		Preload("Events").
		Order("active_count DESC").
		Find(&zones).Error
	return zones, err
}

func (d *Database) GetBuildings() ([]models.CampusBuilding, error) {
	var buildings []models.CampusBuilding
	err := d.db.Order("name ASC").Find(&buildings).Error
	return buildings, err
}

func (d *Database) SaveReport(report *models.Report) error {
	return d.db.Create(report).Error
}
