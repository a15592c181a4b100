package utils

import (
	"math/rand/v2"
	"strings"
	"time"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 8
)

var idUnsafe = strings.NewReplacer(":", "-", ".", "-")

// FormatTimestamp renders t as a UTC ISO-8601 string with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// BuildSubmissionID turns a timestamp into a path-safe identifier and appends
// the random suffix, e.g. 2024-05-01T09-30-12-345Z-k3x9q0ab.
func BuildSubmissionID(timestamp string, suffix func() string) string {
	return idUnsafe.Replace(timestamp) + "-" + suffix()
}

// RandomSuffix returns 8 lowercase base-36 characters. It is not meant to be
// unguessable, only unlikely to repeat within the same millisecond.
func RandomSuffix() string {
	var b strings.Builder
	b.Grow(suffixLength)
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(suffixAlphabet[rand.IntN(len(suffixAlphabet))])
	}
	return b.String()
}
