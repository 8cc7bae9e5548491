package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/storage"
)

type PhotoHandler struct {
	db     *database.Database
	photos *storage.PhotoStore
}

func NewPhotoHandler(db *database.Database, photos *storage.PhotoStore) *PhotoHandler {
	return &PhotoHandler{db: db, photos: photos}
}

// Upload принимает base64-картинку, заливает в хранилище и добавляет
// URL в анкету (не больше шести фото)
func (h *PhotoHandler) Upload(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.photos.UploadBase64(c.Request.Context(), userID, req.Data)
	switch err {
	case nil:
	case storage.ErrPhotoTooLarge, storage.ErrNotAnImage:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}

	photos, err := h.db.AddPhoto(userID, url)
	if err == database.ErrPhotoLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo limit reached"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url, "photos": photos})
}

// Delete убирает URL из анкеты. Отсутствующий URL — тихий no-op
func (h *PhotoHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.PhotoDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photos, err := h.db.RemovePhoto(userID, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}
