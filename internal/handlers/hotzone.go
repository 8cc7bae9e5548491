package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/presence"
)

type HotZoneHandler struct {
	db       *database.Database
	presence *presence.Tracker
}

func NewHotZoneHandler(db *database.Database, tracker *presence.Tracker) *HotZoneHandler {
	return &HotZoneHandler{db: db, presence: tracker}
}

// GetHotZones возвращает зоны кампуса по убыванию активности.
// Счётчик активных берётся из живого окна присутствия в Redis,
// matches_nearby — реальный агрегат по парам пользователя
func (h *HotZoneHandler) GetHotZones(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	zones, err := h.db.GetHotZones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hot zones"})
		return
	}

	type zoneEntry struct {
		payload gin.H
		active  int64
	}

	entries := make([]zoneEntry, 0, len(zones))
	for _, zone := range zones {
		active, err := h.presence.ActiveCount(c.Request.Context(), zone.Building)
		if err != nil {
			// Redis недоступен — падаем на сохранённый счётчик
			log.Warn().Err(err).Str("zone", zone.Name).Msg("presence lookup failed")
			active = int64(zone.ActiveCount)
		}

		nearby, err := h.db.CountMatchesInBuilding(userID, zone.Building)
		if err != nil {
			nearby = 0
		}

		events := make([]gin.H, len(zone.Events))
		for i, e := range zone.Events {
			events[i] = gin.H{
				"id":          e.ID,
				"title":       e.Title,
				"description": e.Description,
				"starts_at":   e.StartsAt,
			}
		}

		entries = append(entries, zoneEntry{
			active: active,
			payload: gin.H{
				"id":             zone.ID,
				"name":           zone.Name,
				"building":       zone.Building,
				"active_count":   active,
				"matches_nearby": nearby,
				"events":         events,
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].active > entries[j].active
	})

	result := make([]gin.H, len(entries))
	for i, e := range entries {
		result[i] = e.payload
	}

	c.JSON(http.StatusOK, gin.H{"hot_zones": result})
}
