package AbstractFunctions

import (
	"strings"
	"time"

	"MaidManager/Constants"
)

// ParseDate parses a calendar day in YYYY-MM-DD form as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(Constants.DateLayout, strings.TrimSpace(value), time.UTC)
}

// FormatDate renders a timestamp as its UTC calendar day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(Constants.DateLayout)
}

// NormalizePhone puts a contact number into international dialing format.
// Numbers already starting with the prefix marker are used unchanged,
// anything else gets the marker prepended. Empty input stays empty so the
// caller can reject it before reaching the delivery service.
func NormalizePhone(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if strings.HasPrefix(number, Constants.InternationalPrefix) {
		return number
	}
	return Constants.InternationalPrefix + number
}
