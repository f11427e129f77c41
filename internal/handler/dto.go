package handler

import "councildigest/internal/model"

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RefreshResponse struct {
	MeetingsCount int `json:"meetings_count"`
}

type PrewarmResponse struct {
	Prewarmed int `json:"prewarmed"`
}

type PrewarmQueueResponse struct {
	Queued int `json:"queued"`
}

type DebugCodesResponse struct {
	Source       string   `json:"source"`
	Count        int      `json:"count"`
	MeetingCodes []string `json:"meeting_codes"`
}

type ContentReportRequest struct {
	MeetingCode string `json:"meeting_code"`
	MotionID    int    `json:"motion_id"`
	Reason      string `json:"reason"`
	Note        string `json:"note"`
}

type ReportsSummaryResponse struct {
	ByMotion []model.MotionReportCount `json:"by_motion"`
}
