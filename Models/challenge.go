package Models

import "time"

// AttendanceChallenge is the ephemeral one-time-code state for a maid.
// At most one row per maid: issuing a new challenge replaces the pending
// one, and every verification attempt deletes the row whatever the outcome,
// so a code can never be used twice. Rows are hard-deleted.
//
// When Delegated is true the sidecar holds the code and Code stays empty.
type AttendanceChallenge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MaidID    uint      `json:"maid_id" gorm:"uniqueIndex;not null"`
	Contact   string    `json:"contact"`
	Code      string    `json:"-"`
	Delegated bool      `json:"delegated"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
