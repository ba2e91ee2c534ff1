package Verification

import (
	"errors"
	"os"
	"time"

	"gorm.io/gorm"

	"MaidManager/AbstractFunctions"
	"MaidManager/Constants"
	"MaidManager/Models"
)

var (
	ErrInvalidContact       = errors.New("invalid contact")
	ErrDeliveryFailure      = errors.New("delivery failure")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrNoPendingChallenge   = errors.New("no pending challenge")
)

// CodeSender delivers a one-time code to a contact number in international
// dialing format. Whatsapp.Client is the production implementation.
type CodeSender interface {
	SendCode(phone, code string) error
}

// Strategy is how codes are issued and checked. Issue returns the code the
// flow should keep locally, or an empty string when the external service
// keeps it (delegated verification). Check decides a pending challenge.
type Strategy interface {
	Issue(contact string) (string, error)
	Check(challenge *Models.AttendanceChallenge, code string, now time.Time) error
}

// Flow is the attendance-verification state machine for one store. A maid
// is in NoChallenge when no AttendanceChallenge row exists and Pending while
// one does; every terminal outcome removes the row, so a code is single-use
// and issuing a new challenge silently discards the previous one.
type Flow struct {
	DB       *gorm.DB
	Strategy Strategy
	Now      func() time.Time
}

func NewFlow(db *gorm.DB, strategy Strategy) *Flow {
	return &Flow{DB: db, Strategy: strategy, Now: time.Now}
}

// StrategyFromEnv picks the in-process strategy unless OTP_STRATEGY asks for
// delegated verification.
func StrategyFromEnv(sender CodeSender) Strategy {
	if os.Getenv("OTP_STRATEGY") == "delegated" {
		return NewDelegatedStrategy()
	}
	return &LocalStrategy{Sender: sender}
}

// Request issues a new challenge for the maid. The contact is normalized
// first and rejected before any external call when empty. Any pending
// challenge is discarded; on delivery failure the maid is left with no
// pending challenge and the caller surfaces the error for a manual retry.
func (f *Flow) Request(maid *Models.Maid) error {
	contact := AbstractFunctions.NormalizePhone(maid.MobileNo)
	if contact == "" {
		return ErrInvalidContact
	}

	if err := f.DB.Where("maid_id = ?", maid.ID).Delete(&Models.AttendanceChallenge{}).Error; err != nil {
		return err
	}

	code, err := f.Strategy.Issue(contact)
	if err != nil {
		return err
	}

	challenge := Models.AttendanceChallenge{
		MaidID:    maid.ID,
		Contact:   contact,
		Code:      code,
		Delegated: code == "",
		ExpiresAt: f.Now().Add(Constants.OtpValidity),
	}
	return f.DB.Create(&challenge).Error
}

// Verify consumes the maid's pending challenge. The challenge row is removed
// before the outcome is decided, so neither a wrong code nor an expired one
// can be retried against the same challenge. On success one Present record
// for today (UTC) is appended and returned.
func (f *Flow) Verify(maid *Models.Maid, code, taskName string) (*Models.AttendanceRecord, error) {
	var challenge Models.AttendanceChallenge
	err := f.DB.Where("maid_id = ?", maid.ID).First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingChallenge
		}
		return nil, err
	}

	if err := f.DB.Delete(&challenge).Error; err != nil {
		return nil, err
	}

	if err := f.Strategy.Check(&challenge, code, f.Now()); err != nil {
		return nil, err
	}

	record := Models.AttendanceRecord{
		MaidID:   maid.ID,
		Date:     AbstractFunctions.FormatDate(f.Now()),
		TaskName: taskName,
		Status:   Models.StatusPresent,
	}
	if err := f.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
