package storage

import (
	"fmt"
	"time"

	"contact-intake/pkg/config"
)

// KeyPrefix is the root of every submission key.
const KeyPrefix = "contact-submissions"

// KeyLayout decides how submission keys are laid out in the store. It only
// affects storage layout, never behaviour.
type KeyLayout int

const (
	// DatePartitioned keys look like contact-submissions/2024/05/01/{id}.json.
	DatePartitioned KeyLayout = iota
	// Flat keys look like contact-submissions/{id}.json.
	Flat
)

// ParseKeyLayout maps the configuration value to a layout; anything other
// than "flat" means DatePartitioned.
func ParseKeyLayout(s string) KeyLayout {
	if s == config.LayoutFlat {
		return Flat
	}
	return DatePartitioned
}

func (l KeyLayout) String() string {
	if l == Flat {
		return config.LayoutFlat
	}
	return config.LayoutDate
}

// Key returns the object key for a submission made at submittedAt. The date
// partition always uses the UTC calendar day.
func (l KeyLayout) Key(submittedAt time.Time, submissionID string) string {
	if l == Flat {
		return fmt.Sprintf("%s/%s.json", KeyPrefix, submissionID)
	}
	t := submittedAt.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s.json", KeyPrefix, t.Year(), int(t.Month()), t.Day(), submissionID)
}

// MonthPrefix returns the listing prefix holding one month of submissions.
// For Flat it is the whole collection, since flat keys carry no date.
func (l KeyLayout) MonthPrefix(year int, month time.Month) string {
	if l == Flat {
		return KeyPrefix + "/"
	}
	return fmt.Sprintf("%s/%04d/%02d/", KeyPrefix, year, int(month))
}
