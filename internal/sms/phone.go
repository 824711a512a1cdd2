package sms

import "strings"

// DigitsOnly strips everything but digits from a phone number.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneNumber normalizes a phone number to E.164. Ten-digit numbers
// get the US country code; eleven-digit numbers starting with 1 pass
// through with a plus sign.
func FormatPhoneNumber(phone string) string {
	digits := DigitsOnly(phone)

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return "+" + digits
	}
	if len(digits) == 10 {
		return "+1" + digits
	}
	if len(digits) >= 11 && strings.HasPrefix(digits, "1") {
		return "+" + digits
	}

	// Assume a US number.
	return "+1" + digits
}
