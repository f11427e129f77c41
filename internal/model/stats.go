package model

type CategoryStat struct {
	Category  string `json:"category"`
	Decisions int    `json:"decisions"`
}

type RegionStat struct {
	Region    string `json:"region"`
	Decisions int    `json:"decisions"`
}

type StatusStat struct {
	Status    string `json:"status"`
	Decisions int    `json:"decisions"`
}

type MeetingStat struct {
	MeetingCode    string `json:"meeting_code"`
	Date           string `json:"date"`
	TotalDecisions int    `json:"total_decisions"`
}

// Stats aggregates decision counts across all cached meeting details.
type Stats struct {
	ByCategory []CategoryStat `json:"by_category"`
	ByRegion   []RegionStat   `json:"by_region"`
	ByStatus   []StatusStat   `json:"by_status"`
	ByMeeting  []MeetingStat  `json:"by_meeting"`
}
