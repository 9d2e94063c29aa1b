package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Values of the active column
const (
	SessionActive   = "true"
	SessionInactive = "false"
)

// TimeTrackingRecord is one login session of a sales person
type TimeTrackingRecord struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"users_id"`
	Date            time.Time   `json:"date"`
	LogInTime       time.Time   `json:"log_in_time"`
	LogOutTime      null.Time   `json:"log_out_time"`
	ActiveLoginTime null.String `json:"active_login_time"`
	Active          string      `json:"active"`
}

// IsOpen reports whether the session has not been closed
func (r *TimeTrackingRecord) IsOpen() bool {
	return r.Active == SessionActive
}
