package usecases

import (
	"fmt"
	"time"
)

// DurationPolicy computes the logout time and active duration of a session.
type DurationPolicy struct {
	// CutoffHour is the local hour from which late logouts are adjusted.
	CutoffHour int
	// LogoutShift is added to the recorded logout time after the cutoff.
	LogoutShift time.Duration
	// DurationPenalty is subtracted from the active duration after the cutoff.
	DurationPenalty time.Duration
	// LoginOffset is subtracted from the login time before measuring.
	LoginOffset time.Duration
	// Location is the zone used to read the local hour. Nil means UTC.
	Location *time.Location
}

// DefaultDurationPolicy returns the standard 18:00 cutoff policy
func DefaultDurationPolicy() DurationPolicy {
	return DurationPolicy{
		CutoffHour:      18,
		LogoutShift:     2 * time.Hour,
		DurationPenalty: time.Hour,
		Location:        time.UTC,
	}
}

// Apply returns the logout time to record and the active duration
func (p DurationPolicy) Apply(login, now time.Time) (time.Time, time.Duration) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	logout := now
	active := now.Sub(login.Add(-p.LoginOffset))
	if now.In(loc).Hour() >= p.CutoffHour {
		logout = now.Add(p.LogoutShift)
		active -= p.DurationPenalty
	}
	if active < 0 {
		active = 0
	}
	if logout.Before(login) {
		logout = login
	}
	return logout, active
}

// FormatDuration renders d as HH:MM:SS; hours may exceed 24
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
