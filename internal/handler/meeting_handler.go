package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"councildigest/internal/model"
	"councildigest/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeetingStore interface {
	ListMeetings(ctx context.Context) ([]model.MeetingOverview, error)
	GetMeeting(ctx context.Context, meetingCode string) (*model.MeetingDetail, error)
	Refresh(ctx context.Context) (int, error)
	Prewarm() (int, error)
	UncachedCodes() ([]string, error)
	Stats() model.Stats
	DebugCodes() (string, []string)
}

// PrewarmQueue hands meeting codes to the background prewarm worker.
type PrewarmQueue interface {
	Push(meetingCode string) error
}

type MeetingHandler struct {
	repository MeetingStore
	queue      PrewarmQueue
}

func NewMeetingHandler(repository MeetingStore, queue PrewarmQueue) *MeetingHandler {
	return &MeetingHandler{repository: repository, queue: queue}
}

func (h *MeetingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Council Digest API is running",
	})
}

func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.repository.ListMeetings(c.Request.Context())
	if err != nil {
		slog.Error("error listing meetings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list meetings"})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meetingCode := c.Param("code")

	detail, err := h.repository.GetMeeting(c.Request.Context(), meetingCode)
	if err != nil {
		if errors.Is(err, repository.ErrScrapeUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No scraper output found. Run the scraper once or set ALLOW_LIVE_EXTRACTION=true. Meeting details are built on first open and then cached.",
			})
			return
		}
		slog.Error("error loading meeting", "meeting_code", meetingCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error loading meeting"})
		return
	}

	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Meeting not found: %q", meetingCode)})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *MeetingHandler) Refresh(c *gin.Context) {
	count, err := h.repository.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrLiveDisabled) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Refresh from council is disabled. Set ALLOW_LIVE_EXTRACTION=true to enable.",
			})
			return
		}
		slog.Error("error refreshing from council", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		return
	}
	c.JSON(http.StatusOK, RefreshResponse{MeetingsCount: count})
}

func (h *MeetingHandler) Prewarm(c *gin.Context) {
	if c.Query("mode") == "queue" {
		h.prewarmViaQueue(c)
		return
	}

	prewarmed, err := h.repository.Prewarm()
	if err != nil {
		if errors.Is(err, repository.ErrScrapeUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No scraper output found. Run the scraper or refresh from council first."})
			return
		}
		slog.Error("error prewarming meetings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prewarm failed"})
		return
	}
	c.JSON(http.StatusOK, PrewarmResponse{Prewarmed: prewarmed})
}

func (h *MeetingHandler) prewarmViaQueue(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Prewarm queue is not configured"})
		return
	}

	codes, err := h.repository.UncachedCodes()
	if err != nil {
		if errors.Is(err, repository.ErrScrapeUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No scraper output found. Run the scraper or refresh from council first."})
			return
		}
		slog.Error("error listing uncached meetings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prewarm failed"})
		return
	}

	queued := 0
	for _, code := range codes {
		if err := h.queue.Push(code); err != nil {
			slog.Error("error queueing meeting for prewarm", "meeting_code", code, "error", err)
			continue
		}
		queued++
	}
	c.JSON(http.StatusAccepted, PrewarmQueueResponse{Queued: queued})
}

func (h *MeetingHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.repository.Stats())
}

func (h *MeetingHandler) DebugCodes(c *gin.Context) {
	source, codes := h.repository.DebugCodes()
	c.JSON(http.StatusOK, DebugCodesResponse{
		Source:       source,
		Count:        len(codes),
		MeetingCodes: codes,
	})
}
