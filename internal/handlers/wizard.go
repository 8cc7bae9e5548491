package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/models"
	"github.com/meunion/campus-match/internal/storage"
	"github.com/meunion/campus-match/internal/wizard"
)

// WizardHandler ведёт мастер заполнения анкеты. Прогресс живёт в Redis,
// в базу всё пишется одним сабмитом на финальном шаге
type WizardHandler struct {
	db     *database.Database
	store  *wizard.Store
	photos *storage.PhotoStore
}

func NewWizardHandler(db *database.Database, store *wizard.Store, photos *storage.PhotoStore) *WizardHandler {
	return &WizardHandler{db: db, store: store, photos: photos}
}

// GetState возвращает текущее состояние мастера
func (h *WizardHandler) GetState(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	state, err := h.store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wizard state"})
		return
	}

	c.JSON(http.StatusOK, wizardResponse(state))
}

// Advance вливает присланные поля в состояние и двигает мастер вперёд.
// При ошибке валидации шаг не меняется, клиент получает причину
func (h *WizardHandler) Advance(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.WizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wizard state"})
		return
	}

	applyWizardUpdate(state, &req)

	if err := state.Next(); err != nil {
		// Состояние сохраняем: введённые поля не должны теряться
		if saveErr := h.store.Save(c.Request.Context(), userID, state); saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to save wizard state")
		}
		resp := wizardResponse(state)
		resp["error"] = err.Error()
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	if err := h.store.Save(c.Request.Context(), userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save wizard state"})
		return
	}

	c.JSON(http.StatusOK, wizardResponse(state))
}

// Back отступает на шаг назад. С первого шага — выход из мастера
func (h *WizardHandler) Back(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	state, err := h.store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wizard state"})
		return
	}

	if exited := state.Back(); exited {
		if err := h.store.Clear(c.Request.Context(), userID); err != nil {
			log.Warn().Err(err).Msg("failed to clear wizard state")
		}
		c.JSON(http.StatusOK, gin.H{"exited": true})
		return
	}

	if err := h.store.Save(c.Request.Context(), userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save wizard state"})
		return
	}

	c.JSON(http.StatusOK, wizardResponse(state))
}

// Submit — финальная запись анкеты с шага review. Фото заливаются
// по одному, неудачные пропускаются и считаются отдельно; анкета
// сохраняется в любом случае
func (h *WizardHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	state, err := h.store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wizard state"})
		return
	}

	if !state.AtReview() {
		c.JSON(http.StatusConflict, gin.H{"error": "wizard is not at the review step"})
		return
	}

	var req dto.WizardSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploaded := 0
	failed := 0
	photoURLs := append([]string{}, state.Photos...)
	for _, data := range req.PhotosBase64 {
		if len(photoURLs) >= models.MaxPhotos {
			break
		}
		url, err := h.photos.UploadBase64(c.Request.Context(), userID, data)
		if err != nil {
			log.Warn().Err(err).Msg("skipping failed photo upload")
			failed++
			continue
		}
		photoURLs = append(photoURLs, url)
		uploaded++
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.DisplayName = state.Name
	user.ClassYear = state.ClassYear
	user.Major = state.Major
	user.Vibe = state.Vibe
	user.Intention = state.Intention
	user.Gender = state.Gender
	user.GenderPreference = state.GenderPreference
	user.Bio = state.Bio
	user.Photos = photoURLs
	if state.Building != "" {
		user.Building = state.Building
		user.Latitude = state.Latitude
		user.Longitude = state.Longitude
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	if err := h.db.ReplaceInterests(userID, state.Interests); err != nil {
		log.Warn().Err(err).Msg("failed to reconcile interests")
	}
	if err := h.db.ReplaceClubs(userID, state.Clubs); err != nil {
		log.Warn().Err(err).Msg("failed to reconcile clubs")
	}

	if err := h.store.Clear(c.Request.Context(), userID); err != nil {
		log.Warn().Err(err).Msg("failed to clear wizard state")
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_complete": user.IsProfileComplete(),
		"photos_uploaded":  uploaded,
		"photos_failed":    failed,
		"user":             formatUserResponse(user),
	})
}

func applyWizardUpdate(state *wizard.State, req *dto.WizardStepRequest) {
	if req.Name != nil {
		state.Name = *req.Name
	}
	if req.ClassYear != nil {
		state.ClassYear = *req.ClassYear
	}
	if req.Major != nil {
		state.Major = *req.Major
	}
	if req.Photos != nil {
		state.Photos = req.Photos
	}
	if req.Vibe != nil {
		state.Vibe = *req.Vibe
	}
	if req.Intention != nil {
		state.Intention = *req.Intention
	}
	if req.Gender != nil {
		state.Gender = *req.Gender
	}
	if req.GenderPreference != nil {
		state.GenderPreference = *req.GenderPreference
	}
	if req.Bio != nil {
		state.Bio = *req.Bio
	}
	if req.Interests != nil {
		state.Interests = req.Interests
	}
	if req.Clubs != nil {
		state.Clubs = req.Clubs
	}
	if req.Building != nil {
		state.Building = *req.Building
	}
	if req.Latitude != nil {
		state.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		state.Longitude = *req.Longitude
	}
}

func wizardResponse(state *wizard.State) gin.H {
	return gin.H{
		"step":        state.Step.String(),
		"step_number": int(state.Step) + 1,
		"total_steps": wizard.TotalSteps,
		"state":       state,
	}
}
