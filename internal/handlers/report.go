package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/models"
)

type ReportHandler struct {
	db *database.Database
}

func NewReportHandler(db *database.Database) *ReportHandler {
	return &ReportHandler{db: db}
}

// CreateReport сохраняет жалобу на пользователя
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportedID, err := uuid.Parse(req.ReportedID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	report := &models.Report{
		ReporterID: userID,
		ReportedID: reportedID,
		Reason:     req.Reason,
		Details:    req.Details,
	}

	if err := h.db.SaveReport(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": report.ID})
}
