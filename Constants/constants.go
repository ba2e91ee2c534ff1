package Constants

import (
	"os"
	"time"
)

// WhatsappGoService is the base URL of the WhatsApp sidecar used to deliver
// attendance codes.
var WhatsappGoService = envOr("WHATSAPP_SERVICE_URL", "http://localhost:3000")

// OtpServiceURL is the base URL of the delegated verification service, used
// only when OTP_STRATEGY=delegated.
var OtpServiceURL = envOr("OTP_SERVICE_URL", "http://localhost:3000")

const (
	// OtpValidity is how long an attendance code stays usable after issue.
	OtpValidity = 5 * time.Minute

	// InternationalPrefix marks a contact number already in dialing format.
	InternationalPrefix = "+"

	DateLayout = "2006-01-02"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
