// Package ident normalizes and generates the string ids used as record keys.
package ident

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Normalize cleans an id taken from a query string, path segment or JSON
// body. Browsers and shell clients occasionally deliver ids wrapped in quote
// characters or padded with whitespace ("%22id123%22", " id123 "); those all
// resolve to the same stored key.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// NewJobID generates a job id in the {millisecond-timestamp}_{rand7} format
// the web client uses when the admin form omits one.
func NewJobID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), randBase36(7))
}

// NewApplicationID generates an application id, app_-prefixed so applications
// are recognizable among the job rows they share a table with.
func NewApplicationID() string {
	return fmt.Sprintf("app_%d_%s", time.Now().UnixMilli(), randBase36(7))
}

// NewUploadToken generates the unique {millis}_{rand7} prefix for uploaded
// file keys.
func NewUploadToken() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), randBase36(7))
}

func randBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
