package Verification

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"MaidManager/Models"
)

var rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// LocalStrategy generates and checks codes in-process; the external
// collaborator is only a message pipe.
type LocalStrategy struct {
	Sender CodeSender
}

func (s *LocalStrategy) Issue(contact string) (string, error) {
	code := GenerateCode()
	if err := s.Sender.SendCode(contact, code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return code, nil
}

// Check accepts only an exact code match inside the validity window. Expiry
// is evaluated here, at verification time; there is no background sweep the
// correctness depends on.
func (s *LocalStrategy) Check(challenge *Models.AttendanceChallenge, code string, now time.Time) error {
	if code == "" || challenge.Code != code || now.After(challenge.ExpiresAt) {
		return ErrInvalidOrExpiredCode
	}
	return nil
}

// GenerateCode produces a 6-digit attendance code.
func GenerateCode() string {
	return fmt.Sprintf("%06d", rng.Intn(1000000))
}
