// Package model holds wire types shared by the domain models.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"lodge/shared/timezone"
)

var null = []byte("null")

// FlexString decodes from a JSON string or number. Upstream identifiers come as either.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*f = ""

		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode string: %w", err)
		}

		*f = FlexString(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}

	*f = FlexString(n.String())

	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Layouts accepted for upstream timestamps. Zone-less values are read in the app timezone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp decodes RFC 3339, zone-less local date-times and [y,m,d,h,m,s] arrays.
// A zero Timestamp encodes as null.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		t.Time = time.Time{}

		return nil
	}

	if len(b) > 0 && b[0] == '[' {
		return t.fromParts(b)
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}

	t.Time = parsed

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return null, nil
	}

	return []byte(strconv.Quote(t.Format(time.RFC3339))), nil
}

func (t *Timestamp) fromParts(b []byte) error {
	var parts []int
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("timestamp array: %w", err)
	}

	if len(parts) < 3 {
		return fmt.Errorf("timestamp array needs at least 3 parts, got %d", len(parts))
	}

	for len(parts) < 7 {
		parts = append(parts, 0)
	}

	t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], timezone.GetLocation())

	return nil
}

// ParseTime accepts the same layouts as Timestamp. Empty input yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return parsed, nil
	}

	for _, layout := range localLayouts {
		if parsed, err := timezone.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
