package rotation

import (
	"fmt"
	"strings"
	"time"
)

// Period is the calendar interval used for time-based rotation.
type Period uint8

// All supported rotation periods.
const (
	PeriodNever Period = iota
	Hourly
	Daily
	Weekly
	Monthly
)

// Label layouts. All of them sort lexically in chronological order, so a
// directory listing shows the suffixed files in time order.
const (
	hourlyLayout  = "2006-01-02T15"
	dailyLayout   = "2006-01-02"
	monthlyLayout = "2006-01"
)

// ParsePeriod converts a configuration string into a Period.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return PeriodNever, nil
	case "hourly":
		return Hourly, nil
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	default:
		return PeriodNever, fmt.Errorf("%w: unknown period %q", ErrInvalidTrigger, s)
	}
}

// String returns the configuration spelling of the period.
func (p Period) String() string {
	switch p {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case PeriodNever:
		fallthrough
	default:
		return "never"
	}
}

// Suffix returns the label of the period instance containing now, in the
// clock's time zone. The label is identical for every instant inside one
// period and different across periods; PeriodNever yields an empty string.
// A week is labeled by the date of its Monday.
func (p Period) Suffix(now time.Time) string {
	switch p {
	case Hourly:
		return now.Format(hourlyLayout)
	case Daily:
		return now.Format(dailyLayout)
	case Weekly:
		daysPastMonday := (int(now.Weekday()) + 6) % 7

		return now.AddDate(0, 0, -daysPastMonday).Format(dailyLayout)
	case Monthly:
		return now.Format(monthlyLayout)
	case PeriodNever:
		fallthrough
	default:
		return ""
	}
}
