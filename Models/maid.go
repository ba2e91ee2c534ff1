package Models

import "gorm.io/gorm"

// Attendance statuses. The verification flow only ever writes Present;
// the manual override path may write either.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Recognized task frequencies. Stored as strings; the payroll calculator
// treats anything it does not recognize as daily.
const (
	FrequencyDaily     = "Daily"
	FrequencyAlternate = "Alternate"
	FrequencyWeekly    = "Weekly"
	FrequencyBiWeekly  = "BiWeekly"
	FrequencyMonthly   = "Monthly"
)

// Maid is the aggregate root: one worker record owned by exactly one user.
// Every read and write goes through an ownership check on UserID.
type Maid struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Name        string `json:"name"`
	MobileNo    string `json:"mobile_no" gorm:"index"`
	Address     string `json:"address"`
	PictureUrl  string `json:"picture_url"`
	BiometricId string `json:"biometric_id"`

	Tasks      []Task             `json:"tasks" gorm:"foreignKey:MaidID;constraint:OnDelete:CASCADE"`
	Attendance []AttendanceRecord `json:"attendance" gorm:"foreignKey:MaidID;constraint:OnDelete:CASCADE"`
}

// Task is one recurring paid duty. Identity is immutable once created;
// name, price and frequency may change.
type Task struct {
	gorm.Model
	MaidID    uint    `json:"maid_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"not null"`
	Price     float64 `json:"price"`
	Frequency string  `json:"frequency"`
}

// AttendanceRecord is one work-day outcome for one task. Append-only;
// several records for the same day and task are allowed.
type AttendanceRecord struct {
	gorm.Model
	MaidID   uint   `json:"maid_id" gorm:"index;not null"`
	Date     string `json:"date" gorm:"index;not null"` // YYYY-MM-DD, UTC calendar day
	TaskName string `json:"task_name" gorm:"not null"`
	Status   string `json:"status" gorm:"not null"`
}

type TaskRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Frequency string  `json:"frequency" validate:"required"`
}

type MaidRequest struct {
	Name        string `json:"name" validate:"required"`
	MobileNo    string `json:"mobile_no" validate:"required"`
	Address     string `json:"address"`
	PictureUrl  string `json:"picture_url"`
	BiometricId string `json:"biometric_id"`
}

type ManualAttendanceRequest struct {
	Date     string `json:"date" validate:"required"`
	TaskName string `json:"task_name" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=Present Absent"`
}
