package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/geo"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/models"
	"github.com/meunion/campus-match/internal/presence"
)

type UserHandler struct {
	db       *database.Database
	presence *presence.Tracker
}

func NewUserHandler(db *database.Database, tracker *presence.Tracker) *UserHandler {
	return &UserHandler{db: db, presence: tracker}
}

// GetMe возвращает анкету текущего пользователя с интересами и клубами
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := formatUserResponse(user)
	resp["email"] = user.Email
	resp["phone"] = user.Phone
	resp["settings"] = user.Settings
	resp["profile_complete"] = user.IsProfileComplete()

	c.JSON(http.StatusOK, resp)
}

// UpdateMe частично обновляет анкету и сверяет интересы/клубы
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	applyProfileUpdate(user, &req)

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	if req.Interests != nil {
		if err := h.db.ReplaceInterests(userID, req.Interests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update interests"})
			return
		}
	}
	if req.Clubs != nil {
		if err := h.db.ReplaceClubs(userID, req.Clubs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update clubs"})
			return
		}
	}

	user, err = h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload user"})
		return
	}

	resp := formatUserResponse(user)
	resp["profile_complete"] = user.IsProfileComplete()
	c.JSON(http.StatusOK, resp)
}

// DeleteMe жёстко удаляет аккаунт по явному запросу
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	if err := h.db.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// GetUser возвращает публичную анкету по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.db.GetUser(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// UpdateSettings перезаписывает карту настроек
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.UpdateSettings(userID, req.Settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": req.Settings})
}

// UpdateLocation принимает координаты устройства, находит ближайший
// корпус и отмечает присутствие в нём
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buildings, err := h.db.GetBuildings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load buildings"})
		return
	}

	nearest, err := geo.NearestBuilding(req.Latitude, req.Longitude, buildings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.SetLocation(userID, nearest.Name, req.Latitude, req.Longitude); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save location"})
		return
	}

	if err := h.presence.Ping(c.Request.Context(), nearest.Name, userID); err != nil {
		// Счётчик присутствия не критичен для ответа
		log.Warn().Err(err).Str("building", nearest.Name).Msg("presence ping failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"building":  nearest.Name,
		"latitude":  req.Latitude,
		"longitude": req.Longitude,
	})
}

func applyProfileUpdate(user *models.User, req *dto.UpdateProfileRequest) {
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.ClassYear != nil {
		user.ClassYear = *req.ClassYear
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Vibe != nil {
		user.Vibe = *req.Vibe
	}
	if req.Intention != nil {
		user.Intention = *req.Intention
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.GenderPreference != nil {
		user.GenderPreference = *req.GenderPreference
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Major != nil {
		user.Major = *req.Major
	}
}

// formatUserResponse — публичное представление анкеты
func formatUserResponse(user *models.User) gin.H {
	interests := make([]string, 0, len(user.Interests))
	for _, i := range user.Interests {
		interests = append(interests, i.Name)
	}
	clubs := make([]string, 0, len(user.Clubs))
	for _, cl := range user.Clubs {
		clubs = append(clubs, cl.Name)
	}

	return gin.H{
		"id":                user.ID,
		"display_name":      user.DisplayName,
		"class_year":        user.ClassYear,
		"role":              user.Role,
		"vibe":              user.Vibe,
		"intention":         user.Intention,
		"gender":            user.Gender,
		"gender_preference": user.GenderPreference,
		"bio":               user.Bio,
		"major":             user.Major,
		"building":          user.Building,
		"photos":            user.Photos,
		"interests":         interests,
		"clubs":             clubs,
		"created_at":        user.CreatedAt,
	}
}
