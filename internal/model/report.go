package model

const (
	ReportReasonIncorrect     = "incorrect_information"
	ReportReasonInappropriate = "inappropriate"
	ReportReasonOther         = "other"
)

func IsValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonIncorrect, ReportReasonInappropriate, ReportReasonOther:
		return true
	}
	return false
}

type ContentReport struct {
	MeetingCode string `json:"meeting_code"`
	MotionID    int    `json:"motion_id"`
	Reason      string `json:"reason"`
	Note        string `json:"note,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type MotionReportCount struct {
	MeetingCode      string `json:"meeting_code"`
	MotionID         int    `json:"motion_id"`
	IncorrectReports int    `json:"incorrect_reports"`
}
