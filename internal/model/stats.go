package model

// Well-known counter keys, seeded at startup
const (
	StatHomeVisits       = "home_visits"
	StatWorkerVisits     = "worker_visits"
	StatCallButtonClicks = "call_button_clicks"
)

// StatKeys lists every counter the statistics table is seeded with
var StatKeys = []string{StatHomeVisits, StatWorkerVisits, StatCallButtonClicks}

// StatsSnapshot is the admin dashboard view of counters and table totals
type StatsSnapshot struct {
	HomeVisits       int64 `json:"home_visits"`
	WorkerVisits     int64 `json:"worker_visits"`
	CallButtonClicks int64 `json:"call_button_clicks"`
	UserCount        int64 `json:"user_count"`
	NoticeCount      int64 `json:"notice_count"`
	AdminNotices     int64 `json:"admin_notices"`
	UserNoticeCount  int64 `json:"userNoticeCount"`
}

// Totals are the row counts the snapshot derives its aggregates from
type Totals struct {
	Users        int64
	Notices      int64
	AdminNotices int64
}
