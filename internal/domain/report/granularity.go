package report

import (
	"fmt"
	"time"

	"github.com/backoffice/server/internal/domain/shared"
)

// Granularity is the aggregation window size for dashboard grouping.
// It is a closed enumeration; unrecognized values are rejected at parse
// time rather than silently falling back to a default.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity parses a granularity string. The empty string maps to
// daily; any other unrecognized value is an invalid-input error.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "":
		return GranularityDaily, nil
	case string(GranularityDaily):
		return GranularityDaily, nil
	case string(GranularityWeekly):
		return GranularityWeekly, nil
	case string(GranularityMonthly):
		return GranularityMonthly, nil
	default:
		return "", shared.NewDomainError("INVALID_GRANULARITY", fmt.Sprintf("Unknown period granularity %q", s))
	}
}

// PeriodKey is the grouping discriminator derived from an order date and a
// granularity. Label is unique per bucket; Date is the first day of the
// period and defines bucket ordering.
type PeriodKey struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Week  int    `json:"week,omitempty"`
	Month int    `json:"month,omitempty"`
	Date  string `json:"date"`
}

// PeriodKeyFor derives the period key for a date under this granularity.
// Dates are normalized to UTC so that two timestamps on the same calendar
// day always share a key.
func (g Granularity) PeriodKeyFor(t time.Time) PeriodKey {
	t = t.UTC()
	switch g {
	case GranularityWeekly:
		year, week := t.ISOWeek()
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return PeriodKey{
			Label: fmt.Sprintf("%d-W%02d", year, week),
			Year:  year,
			Week:  week,
			Date:  monday.Format("2006-01-02"),
		}
	case GranularityMonthly:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return PeriodKey{
			Label: t.Format("2006-01"),
			Year:  t.Year(),
			Month: int(t.Month()),
			Date:  first.Format("2006-01-02"),
		}
	default:
		day := t.Format("2006-01-02")
		return PeriodKey{
			Label: day,
			Year:  t.Year(),
			Date:  day,
		}
	}
}
