package id

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)
var multiDash = regexp.MustCompile(`-+`)

// Key converts a user identifier to a compact lowercase slug (a–z0–9–) safe
// for use as a filename or storage key.
func Key(userID string) string {
	s := strings.ToLower(userID)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		// Identifiers with no usable characters still need a stable key.
		return fmt.Sprintf("u-%016x", xxhash.Sum64String(userID))
	}
	return s
}

// ReportID builds YYYY-MM-DD-<key>-NN where NN is xxhash(seed)%100.
func ReportID(dateISO, userID string, seedInput []byte) string {
	h := xxhash.Sum64(seedInput) % 100
	return fmt.Sprintf("%s-%s-%02d", dateISO, Key(userID), h)
}
