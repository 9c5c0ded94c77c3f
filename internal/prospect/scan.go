package prospect

import (
	"errors"
	"strings"
)

// ErrInvalidScan is returned for payloads that do not hold a name and an email.
var ErrInvalidScan = errors.New("invalid scan")

// Payload encodes a name and email the way the QR code carries them.
func Payload(name, email string) string {
	return name + "\n" + email
}

// ParsePayload splits a scanned payload into name and email. Typed input may
// use "|" in place of the newline.
func ParsePayload(s string) (name, email string, err error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	parts := strings.SplitN(s, "\n", 2)
	if len(parts) != 2 {
		parts = strings.SplitN(s, "|", 2)
	}
	if len(parts) != 2 {
		return "", "", ErrInvalidScan
	}
	name, email = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" && email == "" {
		return "", "", ErrInvalidScan
	}
	return name, email, nil
}
