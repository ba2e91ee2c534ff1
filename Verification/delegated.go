package Verification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MaidManager/Constants"
	"MaidManager/Models"
)

// DelegatedStrategy hands code generation and comparison to an external
// verification service; this process never sees the code value. The local
// expiry on the stored challenge still applies as an upper bound.
type DelegatedStrategy struct {
	BaseURL string
	Client  *http.Client
}

func NewDelegatedStrategy() *DelegatedStrategy {
	return &DelegatedStrategy{
		BaseURL: Constants.OtpServiceURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *DelegatedStrategy) Issue(contact string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"phone": contact})
	res, err := s.Client.Post(s.BaseURL+"/otp/request", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: verification service returned %d", ErrDeliveryFailure, res.StatusCode)
	}
	return "", nil
}

func (s *DelegatedStrategy) Check(challenge *Models.AttendanceChallenge, code string, now time.Time) error {
	if code == "" || now.After(challenge.ExpiresAt) {
		return ErrInvalidOrExpiredCode
	}

	payload, _ := json.Marshal(map[string]string{
		"phone": challenge.Contact,
		"code":  code,
	})
	res, err := s.Client.Post(s.BaseURL+"/otp/check", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return ErrInvalidOrExpiredCode
	}
	defer res.Body.Close()

	var output struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(res.Body).Decode(&output); err != nil {
		return ErrInvalidOrExpiredCode
	}
	if res.StatusCode != http.StatusOK || !output.Approved {
		return ErrInvalidOrExpiredCode
	}
	return nil
}
