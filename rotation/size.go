package rotation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Size multipliers for the K/M/G unit suffixes.
const (
	kilobyte = 1 << 10
	megabyte = 1 << 20
	gigabyte = 1 << 30
)

// ParseSize converts a human-friendly size string into bytes. A bare integer
// is read as kilobytes. A trailing K, M or G (any case) multiplies the
// magnitude by 1024, 1024² or 1024³. Errors wrap ErrSizeParse.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty size string", ErrSizeParse)
	}

	magnitude := s
	unit := 'K' // bare numbers are kilobytes.

	if last := rune(s[len(s)-1]); unicode.IsLetter(last) {
		magnitude = s[:len(s)-1]
		unit = unicode.ToUpper(last)
	}

	num, err := strconv.ParseInt(magnitude, 10, 64)
	if err != nil || num < 0 {
		return 0, fmt.Errorf("%w: bad magnitude %q", ErrSizeParse, magnitude)
	}

	var mult int64

	switch unit {
	case 'K':
		mult = kilobyte
	case 'M':
		mult = megabyte
	case 'G':
		mult = gigabyte
	default:
		return 0, fmt.Errorf("%w: unsupported unit %q, use K, M or G", ErrSizeParse, string(unit))
	}

	if num > math.MaxInt64/mult {
		return 0, fmt.Errorf("%w: %q overflows", ErrSizeParse, s)
	}

	return num * mult, nil
}
