package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EpochMillis is a timestamp sent as milliseconds since the Unix epoch, either
// as a JSON number or a numeric string.
type EpochMillis int64

// UnmarshalJSON accepts a number or a numeric string. A JSON null leaves a
// *EpochMillis field nil, which is how an absent value is told apart from 0.
func (e *EpochMillis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return e.parse(s)
	}
	return e.parse(string(b))
}

func (e *EpochMillis) parse(s string) error {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = EpochMillis(ms)
		return nil
	}
	// the web client sometimes sends 1.7e12 style numbers
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid epoch milliseconds %q", s)
	}
	*e = EpochMillis(int64(f))
	return nil
}

// Time returns the UTC instant. 0 is 1970-01-01T00:00:00Z.
func (e EpochMillis) Time() time.Time {
	return time.UnixMilli(int64(e)).UTC()
}

// parseEpochParam reads a query parameter holding epoch milliseconds. An
// empty parameter yields the zero time.
func parseEpochParam(v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	var e EpochMillis
	if err := e.parse(v); err != nil {
		return time.Time{}, err
	}
	return e.Time(), nil
}
