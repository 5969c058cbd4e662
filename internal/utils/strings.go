package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MaskPhone hides the middle digits of a phone number for logs.
func MaskPhone(phone string) string {
	p := strings.TrimSpace(phone)
	if len(p) < 6 {
		return p
	}
	return p[:3] + strings.Repeat("*", len(p)-5) + p[len(p)-2:]
}
