// Package analysis derives timing and failure diagnostics from workflow
// runs, jobs and steps.
package analysis

import (
	"encoding/json"
	"strconv"
	"time"
)

// Duration is an elapsed time in milliseconds that may be unknown.
// The zero value is unknown.
type Duration struct {
	ms    int64
	known bool
}

// Unknown returns a duration with no value.
func Unknown() Duration {
	return Duration{}
}

// Millis returns a known duration of ms milliseconds. Negative values clamp to zero.
func Millis(ms int64) Duration {
	if ms < 0 {
		ms = 0
	}
	return Duration{ms: ms, known: true}
}

// Elapsed returns end minus start, or Unknown when either endpoint is missing.
// An end before start (clock skew upstream) yields zero rather than a negative value.
func Elapsed(start, end *time.Time) Duration {
	if start == nil || end == nil {
		return Unknown()
	}
	return Millis(end.Sub(*start).Milliseconds())
}

// Known reports whether the duration has a value.
func (d Duration) Known() bool {
	return d.known
}

// Value returns the milliseconds and whether they are known.
func (d Duration) Value() (int64, bool) {
	return d.ms, d.known
}

// OrZero returns the milliseconds, treating unknown as zero.
func (d Duration) OrZero() int64 {
	return d.ms
}

// Human renders the duration as rounded seconds, e.g. "12s".
// The second result is false for an unknown duration.
func (d Duration) Human() (string, bool) {
	if !d.known {
		return "", false
	}
	return strconv.FormatInt((d.ms+500)/1000, 10) + "s", true
}

// MarshalJSON renders the milliseconds, or null when unknown.
func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.known {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(d.ms, 10)), nil
}

// UnmarshalJSON accepts a millisecond count or null.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Unknown()
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*d = Millis(ms)
	return nil
}

// HumanDuration is the JSON form of Duration.Human: a string or null.
type HumanDuration Duration

// MarshalJSON renders the rounded-seconds string, or null when unknown.
func (h HumanDuration) MarshalJSON() ([]byte, error) {
	s, ok := Duration(h).Human()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}
