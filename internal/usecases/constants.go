package usecases

import "time"

// Time tracking lock keys are per user
const timeTrackingLockPrefix = "lock:time-tracking:"

// DefaultTimeTrackingLockTTL bounds how long a start or end may hold the user lock
const DefaultTimeTrackingLockTTL = 10 * time.Second

// DefaultMaxImageBytes is the exclusive upper bound on profile image size
const DefaultMaxImageBytes = 6_000_000

// imageContentTypePrefix is the only accepted family of upload content types
const imageContentTypePrefix = "image/"

// Mail subjects
const (
	subjectSalesPersonWelcome = "Welcome to the sales team"
	subjectPasswordReset      = "Your password has been reset"
)
