package handler

import (
	"log/slog"
	"net/http"

	"councildigest/internal/model"

	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	Append(report model.ContentReport) error
	SummarizeByMotion(meetingCode string) []model.MotionReportCount
}

type ReportHandler struct {
	repository ReportStore
}

func NewReportHandler(repository ReportStore) *ReportHandler {
	return &ReportHandler{repository: repository}
}

func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req ContentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
		return
	}

	if !model.IsValidReportReason(req.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "reason must be one of: incorrect_information, inappropriate, other",
		})
		return
	}

	report := model.ContentReport{
		MeetingCode: req.MeetingCode,
		MotionID:    req.MotionID,
		Reason:      req.Reason,
		Note:        req.Note,
	}
	if err := h.repository.Append(report); err != nil {
		slog.Error("error saving content report", "meeting_code", req.MeetingCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "submitted"})
}

func (h *ReportHandler) ReportsSummary(c *gin.Context) {
	meetingCode := c.Query("meeting_code")
	summary := h.repository.SummarizeByMotion(meetingCode)
	c.JSON(http.StatusOK, ReportsSummaryResponse{ByMotion: summary})
}
