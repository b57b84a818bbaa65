package admin

import (
	"fmt"
	"time"
)

// Date filter choices offered for date columns in list_filter.
const (
	DateAny       = "any"
	DateToday     = "today"
	DatePast7Days = "past_7_days"
	DateThisMonth = "this_month"
	DateThisYear  = "this_year"
	DateNoDate    = "no_date"
	DateHasDate   = "has_date"
)

var dateChoices = []string{DateAny, DateToday, DatePast7Days, DateThisMonth, DateThisYear, DateNoDate, DateHasDate}

func DateChoices() []string {
	return append([]string(nil), dateChoices...)
}

// DateRange is a resolved date filter: [From, To) and/or a null check.
type DateRange struct {
	From   *time.Time
	To     *time.Time
	IsNull *bool
}

// ResolveDateFilter turns a choice into a range relative to now's calendar day.
func ResolveDateFilter(choice string, now time.Time) (DateRange, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	span := func(from, to time.Time) DateRange {
		return DateRange{From: &from, To: &to}
	}
	null := func(v bool) DateRange {
		return DateRange{IsNull: &v}
	}

	switch choice {
	case "", DateAny:
		return DateRange{}, nil
	case DateToday:
		return span(today, tomorrow), nil
	case DatePast7Days:
		return span(today.AddDate(0, 0, -7), tomorrow), nil
	case DateThisMonth:
		first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return span(first, first.AddDate(0, 1, 0)), nil
	case DateThisYear:
		first := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return span(first, first.AddDate(1, 0, 0)), nil
	case DateNoDate:
		return null(true), nil
	case DateHasDate:
		return null(false), nil
	}
	return DateRange{}, fmt.Errorf("unknown date filter %q", choice)
}
