package database

import (
	"time"

	"github.com/meunion/campus-match/internal/models"
)

// Справочные данные кампуса: корпуса с координатами и hot-зоны.
// FirstOrCreate по имени, повторный запуск ничего не дублирует

var defaultBuildings = []models.CampusBuilding{
	{Name: "Main Hall", Latitude: 40.0, Longitude: -74.0},
	{Name: "Science Center", Latitude: 40.0012, Longitude: -74.0008},
	{Name: "Library", Latitude: 39.9991, Longitude: -73.9985},
	{Name: "Student Union", Latitude: 40.0005, Longitude: -74.0021},
	{Name: "Athletic Complex", Latitude: 40.0033, Longitude: -73.9972},
	{Name: "Arts Building", Latitude: 39.9978, Longitude: -74.0014},
}

var defaultZones = []models.HotZone{
	{Name: "Union Cafe", Building: "Student Union"},
	{Name: "Library Commons", Building: "Library"},
	{Name: "Rec Courts", Building: "Athletic Complex"},
	{Name: "Quad", Building: "Main Hall"},
}

func (d *Database) SeedReferenceData() error {
	for _, b := range defaultBuildings {
		building := b
		if err := d.db.Where("name = ?", building.Name).FirstOrCreate(&building).Error; err != nil {
			return err
		}
	}

	for _, z := range defaultZones {
		zone := z
		if err := d.db.Where("name = ?", zone.Name).FirstOrCreate(&zone).Error; err != nil {
			return err
		}
	}

	// Стартовое событие, чтобы список зон не был пустым для новых стендов
	var union models.HotZone
	if err := d.db.Where("name = ?", "Union Cafe").First(&union).Error; err == nil {
		var count int64
		d.db.Model(&models.HotZoneEvent{}).Where("hot_zone_id = ?", union.ID).Count(&count)
		if count == 0 {
			event := models.HotZoneEvent{
				HotZoneID:   union.ID,
				Title:       "Open Mic Night",
				Description: "Every Thursday at the Union Cafe stage",
				StartsAt:    nextWeekday(time.Thursday, 19),
			}
			if err := d.db.Create(&event).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func nextWeekday(day time.Weekday, hour int) time.Time {
	now := time.Now()
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	for t.Weekday() != day || t.Before(now) {
		t = t.Add(24 * time.Hour)
	}
	return t
}
