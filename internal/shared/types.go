package shared

// Asynq queue names
const (
	QueueNotifications = "notifications"
	QueueDefault       = "default"
)

// Asynq task type names for cat lifecycle events
const (
	TypeCatAssigned   = "cat:assigned"
	TypeCatReassigned = "cat:reassigned"
	TypeCatUnassigned = "cat:unassigned"
	TypeCatClaimed    = "cat:claimed"
)

// Scheduled maintenance tasks
const (
	TypeRefreshCohortSizes = "announcement:refresh_cohort_sizes"
)

// RefreshCohortSizesPayload bounds how many active announcements one
// scheduled run recomputes.
type RefreshCohortSizesPayload struct {
	Limit int `json:"limit"`
}
