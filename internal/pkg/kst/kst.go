// Package kst converts between UTC instants and the fixed KST (UTC+9)
// civil calendar every business rule is expressed in. The offset never
// changes, so no timezone database is consulted.
package kst

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Zone is Korean Standard Time. KST has no daylight saving.
var Zone = time.FixedZone("KST", 9*60*60)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	utcLayout  = "2006-01-02T15:04:05.000Z"
)

// normalizeTime pads HH:mm to HH:mm:ss.
func normalizeTime(t string) string {
	if strings.Count(t, ":") == 1 {
		return t + ":00"
	}
	return t
}

// ToLocalISOString combines a civil date and wall-clock time into an
// instant string tagged with the fixed +09:00 offset.
//
//	ToLocalISOString("2026-01-06", "14:00") == "2026-01-06T14:00:00+09:00"
func ToLocalISOString(date, clock string) string {
	return fmt.Sprintf("%sT%s+09:00", date, normalizeTime(clock))
}

// ToLocalTime parses a civil date and wall-clock time as a KST instant.
func ToLocalTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, date+"T"+normalizeTime(clock), Zone)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parsing local time")
	}
	return t, nil
}

// LocalToUTCISOString combines a civil date and wall-clock time and
// renders the instant in UTC.
//
//	LocalToUTCISOString("2026-01-06", "14:00") == "2026-01-06T05:00:00.000Z"
func LocalToUTCISOString(date, clock string) (string, error) {
	t, err := ToLocalTime(date, clock)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(utcLayout), nil
}

// UTCToLocalDate returns the KST civil date of a UTC instant string.
func UTCToLocalDate(timestamp string) (string, error) {
	t, err := parseInstant(timestamp)
	if err != nil {
		return "", err
	}
	return t.In(Zone).Format(dateLayout), nil
}

// UTCToLocalTime returns the KST wall-clock time of a UTC instant string.
func UTCToLocalTime(timestamp string) (string, error) {
	t, err := parseInstant(timestamp)
	if err != nil {
		return "", err
	}
	return t.In(Zone).Format(timeLayout), nil
}

func parseInstant(timestamp string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, utcLayout} {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unsupported timestamp format: %q", timestamp)
}

// Today returns the current KST civil date as YYYY-MM-DD.
func Today() string {
	return time.Now().In(Zone).Format(dateLayout)
}

// NowTime returns the current KST wall-clock time as HH:mm:ss.
func NowTime() string {
	return time.Now().In(Zone).Format(timeLayout)
}

// NowISO returns the current instant tagged with the +09:00 offset.
func NowISO() string {
	return time.Now().In(Zone).Format("2006-01-02T15:04:05+09:00")
}

// DateOf returns the KST civil date of an instant.
func DateOf(t time.Time) string {
	return t.In(Zone).Format(dateLayout)
}

// MinutesBetween returns the minute difference between two wall-clock
// times given as HH:mm or HH:mm:ss.
func MinutesBetween(start, end string) (int, error) {
	s, err := time.Parse(timeLayout, normalizeTime(start))
	if err != nil {
		return 0, errors.Wrap(err, "parsing start time")
	}
	e, err := time.Parse(timeLayout, normalizeTime(end))
	if err != nil {
		return 0, errors.Wrap(err, "parsing end time")
	}

	return (e.Hour()*60 + e.Minute()) - (s.Hour()*60 + s.Minute()), nil
}
