// Package calendar projects a month and a set of appointments onto a
// Monday-first day grid.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"wellness-admin/models"
)

var ErrMissingID = errors.New("appointment has no id")

var Palette = []string{
	"#382aae",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#06b6d4",
	"#8b5cf6",
	"#ec4899",
}

var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Color returns the palette entry for an appointment id.
func Color(id int64) (string, error) {
	if id == 0 {
		return "", ErrMissingID
	}
	n := int64(len(Palette))
	return Palette[((id%n)+n)%n], nil
}

type Chip struct {
	Appointment models.Appointment
	Color       string
	Start       time.Time
}

func (c Chip) TimeLabel() string {
	return fmt.Sprintf("%d:%02d", c.Start.Hour(), c.Start.Minute())
}

type Cell struct {
	Blank        bool
	Day          int
	Date         time.Time
	IsToday      bool
	Appointments []Chip
}

type Month struct {
	Year     int
	Month    time.Month
	Weekdays []string
	Cells    []Cell
	Prev     time.Time
	Next     time.Time
}

func (m *Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Param formats the month the way the appointments page expects it in ?month=.
func Param(t time.Time) string {
	return t.Format("2006-01")
}

// LeadingBlanks is the number of empty cells before the 1st in a Monday-first week.
func LeadingBlanks(year int, month time.Month, loc *time.Location) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return (int(first.Weekday()) + 6) % 7
}

func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Build lays out ref's month. Appointments are placed on the day their start
// falls on in ref's location and ordered by start time within a day.
// Appointments without an id are left off the grid; they are reported in the
// returned error while the month is still returned.
func Build(ref time.Time, appointments []models.Appointment, now time.Time) (*Month, error) {
	loc := ref.Location()
	year, month := ref.Year(), ref.Month()
	today := now.In(loc)

	byDay := make(map[int][]Chip)
	var errs []error
	for _, a := range appointments {
		start := a.StartDate.In(loc)
		if start.Year() != year || start.Month() != month {
			continue
		}
		color, err := Color(a.AppointmentID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q on %s: %w", a.Title, start.Format("2006-01-02"), err))
			continue
		}
		byDay[start.Day()] = append(byDay[start.Day()], Chip{Appointment: a, Color: color, Start: start})
	}

	blanks := LeadingBlanks(year, month, loc)
	days := DaysIn(year, month, loc)

	m := &Month{
		Year:     year,
		Month:    month,
		Weekdays: Weekdays,
		Cells:    make([]Cell, 0, blanks+days),
		Prev:     time.Date(year, month-1, 1, 0, 0, 0, 0, loc),
		Next:     time.Date(year, month+1, 1, 0, 0, 0, 0, loc),
	}

	for i := 0; i < blanks; i++ {
		m.Cells = append(m.Cells, Cell{Blank: true})
	}

	for d := 1; d <= days; d++ {
		chips := byDay[d]
		sort.SliceStable(chips, func(i, j int) bool {
			return chips[i].Start.Before(chips[j].Start)
		})
		m.Cells = append(m.Cells, Cell{
			Day:          d,
			Date:         time.Date(year, month, d, 0, 0, 0, 0, loc),
			IsToday:      today.Year() == year && today.Month() == month && today.Day() == d,
			Appointments: chips,
		})
	}

	return m, errors.Join(errs...)
}
