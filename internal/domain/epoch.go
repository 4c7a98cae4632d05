package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// ErrDateFormat reports a packaging date string that matches neither of the
// accepted forms. Non-fatal for a resolution run: the caller keeps the
// candidate with epoch -1, which sorts last.
var ErrDateFormat = errors.New("bad packaging date format")

// Supported timezone abbreviation shifts, in hours relative to UTC.
// Abbreviations outside this table fall back to UTC with a warning.
var tzShift = map[string]float64{
	"CDT": -5, "CEST": 2, "CET": 1, "CST": -6, "CT": -6,
	"EDT": -4, "EET": 2, "EST": -5, "ET": -5,
	"IST": 5.5,
	"JST": 9,
	"MSK": 3, "MT": 2,
	"NZST": 12,
	"PDT": -7, "PST": -8,
	"SAST": 2,
	"UTC": 0,
	"WEST": 1, "WET": 0,
}

var (
	// "Mon Oct  9 23:35:09 2017" (no timezone token, assumed UTC)
	dateNoTZRegexp = regexp.MustCompile(`^(\S+\s+\S+\s+\d+\s+\d+:\d+:\d+)\s+(\d{4})$`)
	// "Mon Oct  9 23:35:09 CDT 2017"
	dateTZRegexp = regexp.MustCompile(`^(\S+\s+\S+\s+\d+\s+\d+:\d+:\d+)\s+(\S+)\s+(\d{4})$`)
)

const canonicalDateLayout = "Mon Jan _2 15:04:05 MST 2006"

// ToUTCEpoch converts a packaging date string into seconds from the unix
// epoch, UTC. Two input forms are tried in order: without a timezone token
// (UTC assumed) and with one. The instant is first parsed as if it were UTC,
// then shifted by the timezone table above.
func ToUTCEpoch(date string) (int64, error) {
	tz := "UTC"

	var canonical string

	if match := dateNoTZRegexp.FindStringSubmatch(date); match != nil {
		canonical = fmt.Sprintf("%s UTC %s", match[1], match[2])
	} else if match := dateTZRegexp.FindStringSubmatch(date); match != nil {
		canonical = fmt.Sprintf("%s UTC %s", match[1], match[3])
		tz = match[2]
	} else {
		return -1, fmt.Errorf("%w: %q", ErrDateFormat, date)
	}

	parsed, err := time.ParseInLocation(canonicalDateLayout, canonical, time.UTC)
	if err != nil {
		return -1, fmt.Errorf("%w: cannot parse %q: %w", ErrDateFormat, canonical, err)
	}

	shift, known := tzShift[tz]
	if !known {
		slog.Warn("Unsupported time zone, using UTC", "tz", tz, "date", date)

		shift = 0
	}

	return parsed.Unix() - int64(shift*3600), nil
}
