package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Tokens used for non-finite doubles.
const (
	PositiveInfinity = "INF"
	NegativeInfinity = "-INF"
	NotANumber       = "NaN"
)

// FormatDouble renders v in the shortest form that parses back to the same
// bits (except for the sign of NaN).
func FormatDouble(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return PositiveInfinity
	case math.IsInf(v, -1):
		return NegativeInfinity
	case math.IsNaN(v):
		return NotANumber
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseDouble parses a double written by FormatDouble. It also accepts the
// spellings older writers produced for infinity and a single decimal comma.
func ParseDouble(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case PositiveInfinity, "+INF", "Inf", "+Inf", "Infinity", "+Infinity", "∞", "+∞":
		return math.Inf(1), nil
	case NegativeInfinity, "-Inf", "-Infinity", "-∞":
		return math.Inf(-1), nil
	case NotANumber, "NAN", "nan":
		return math.NaN(), nil
	}

	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid double %q", raw)
	}
	return v, nil
}

// FormatInt renders a signed integer.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ParseInt parses a signed integer.
func ParseInt(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return v, nil
}

// FormatUint renders an unsigned integer.
func FormatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// ParseUint parses an unsigned integer.
func ParseUint(raw string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned integer %q", raw)
	}
	return v, nil
}

// FormatBool renders a boolean as 1 or 0.
func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ParseBool parses 1/0 and the True/False spelling of older writers.
func ParseBool(raw string) (bool, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "1" || strings.EqualFold(s, "true"):
		return true, nil
	case s == "0" || strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}

// FormatGUID renders a GUID in canonical hyphenated form.
func FormatGUID(id uuid.UUID) string {
	return id.String()
}

// ParseGUID parses a GUID. Braced and urn forms are accepted.
func ParseGUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid guid %q", raw)
	}
	return id, nil
}
