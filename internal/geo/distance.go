package geo

import (
	"errors"
	"math"

	"github.com/meunion/campus-match/internal/models"
)

// Средний радиус Земли в метрах
const earthRadius = 6371000.0

var ErrNoBuildings = errors.New("no campus buildings configured")

// Distance считает расстояние по дуге большого круга (формула гаверсинусов)
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// NearestBuilding выбирает ближайший корпус. При равных расстояниях
// побеждает первый по порядку списка. Пустой список — ошибка
func NearestBuilding(lat, lng float64, buildings []models.CampusBuilding) (*models.CampusBuilding, error) {
	if len(buildings) == 0 {
		return nil, ErrNoBuildings
	}

	best := 0
	bestDist := Distance(lat, lng, buildings[0].Latitude, buildings[0].Longitude)
	for i := 1; i < len(buildings); i++ {
		d := Distance(lat, lng, buildings[i].Latitude, buildings[i].Longitude)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return &buildings[best], nil
}
