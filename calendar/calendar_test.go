package calendar

import (
	"errors"
	"testing"
	"time"

	"wellness-admin/models"
)

func appt(id int64, title string, start time.Time) models.Appointment {
	return models.Appointment{
		AppointmentID: id,
		Title:         title,
		StartDate:     models.Timestamp{Time: start},
		EndDate:       models.Timestamp{Time: start.Add(time.Hour)},
	}
}

func TestLeadingBlanksMatchesWeekday(t *testing.T) {
	loc := time.UTC
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
			want := (int(first.Weekday()) + 6) % 7
			if got := LeadingBlanks(year, month, loc); got != want {
				t.Errorf("%d-%02d: got %d, want %d", year, month, got, want)
			}
		}
	}
}

func TestLeadingBlanksKnownMonths(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.September, 6}, // Sunday
		{2024, time.July, 0},      // Monday
		{2025, time.March, 5},     // Saturday
		{2026, time.October, 3},   // Thursday
	}
	for _, tt := range tests {
		if got := LeadingBlanks(tt.year, tt.month, time.UTC); got != tt.want {
			t.Errorf("%d-%s: got %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestBuildGridShape(t *testing.T) {
	ref := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	m, err := Build(ref, nil, ref)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(m.Cells) != 6+30 {
		t.Fatalf("got %d cells, want 36", len(m.Cells))
	}
	if len(m.Cells) > 42 {
		t.Fatal("grid exceeds 42 cells")
	}
	for i := 0; i < 6; i++ {
		if !m.Cells[i].Blank {
			t.Errorf("cell %d should be blank", i)
		}
	}
	for i, c := range m.Cells[6:] {
		if c.Blank || c.Day != i+1 {
			t.Errorf("cell %d: blank=%v day=%d", i+6, c.Blank, c.Day)
		}
	}
	if m.Title() != "September 2024" {
		t.Errorf("Title() = %q", m.Title())
	}
	if Param(m.Prev) != "2024-08" || Param(m.Next) != "2024-10" {
		t.Errorf("prev/next = %s/%s", Param(m.Prev), Param(m.Next))
	}
}

func TestBuildMonthRollover(t *testing.T) {
	ref := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	m, _ := Build(ref, nil, ref)
	if Param(m.Next) != "2025-01" {
		t.Errorf("next after December = %s", Param(m.Next))
	}
	// December 1st 2024 is a Sunday, so it sits in the last column
	if m.Cells[6].Blank || m.Cells[6].Day != 1 || !m.Cells[5].Blank {
		t.Errorf("1st should be the seventh cell, got %+v", m.Cells[6])
	}

	jan, _ := Build(m.Next, nil, ref)
	// January 1st 2025 is a Wednesday
	if !jan.Cells[1].Blank || jan.Cells[2].Day != 1 {
		t.Errorf("January grid starts wrong: %+v", jan.Cells[:3])
	}
}

func TestBuildMarksToday(t *testing.T) {
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 14, 16, 0, 0, 0, time.UTC)

	m, _ := Build(ref, nil, now)
	count := 0
	for _, c := range m.Cells {
		if c.IsToday {
			count++
			if c.Day != 14 {
				t.Errorf("today flag on day %d", c.Day)
			}
		}
	}
	if count != 1 {
		t.Errorf("got %d today cells, want 1", count)
	}

	other, _ := Build(ref.AddDate(0, 1, 0), nil, now)
	for _, c := range other.Cells {
		if c.IsToday {
			t.Error("no cell should be today in another month")
		}
	}
}

func TestBuildPlacesAppointmentsOnTheirDay(t *testing.T) {
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		appt(1, "Ayşe", time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)),
		appt(2, "Mehmet", time.Date(2025, time.March, 3, 23, 59, 0, 0, time.UTC)),
		appt(3, "Zeynep", time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)),
		appt(4, "Other month", time.Date(2025, time.April, 3, 9, 0, 0, 0, time.UTC)),
		appt(5, "Other year", time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)),
	}

	m, err := Build(ref, appts, ref)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := map[int64]int{}
	for _, c := range m.Cells {
		for _, chip := range c.Appointments {
			seen[chip.Appointment.AppointmentID]++
			if chip.Start.Day() != c.Day {
				t.Errorf("appointment %d on day %d rendered in cell %d", chip.Appointment.AppointmentID, chip.Start.Day(), c.Day)
			}
		}
	}

	for _, id := range []int64{1, 2, 3} {
		if seen[id] != 1 {
			t.Errorf("appointment %d appears %d times, want 1", id, seen[id])
		}
	}
	for _, id := range []int64{4, 5} {
		if seen[id] != 0 {
			t.Errorf("appointment %d from another month is on the grid", id)
		}
	}
}

func TestBuildUsesReferenceLocation(t *testing.T) {
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Skip("tzdata not available")
	}
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, istanbul)
	// 22:30 UTC on the 3rd is 01:30 on the 4th in Istanbul
	a := appt(7, "Late", time.Date(2025, time.March, 3, 22, 30, 0, 0, time.UTC))

	m, _ := Build(ref, []models.Appointment{a}, ref)
	for _, c := range m.Cells {
		if len(c.Appointments) > 0 && c.Day != 4 {
			t.Errorf("appointment placed on day %d, want 4", c.Day)
		}
	}
}

func TestBuildSortsByStartTime(t *testing.T) {
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	day := func(h int) time.Time { return time.Date(2025, time.March, 10, h, 0, 0, 0, time.UTC) }
	appts := []models.Appointment{
		appt(10, "late", day(16)),
		appt(11, "early", day(8)),
		appt(12, "noon-a", day(12)),
		appt(13, "noon-b", day(12)),
	}

	m, _ := Build(ref, appts, ref)
	var chips []Chip
	for _, c := range m.Cells {
		if c.Day == 10 {
			chips = c.Appointments
		}
	}

	want := []string{"early", "noon-a", "noon-b", "late"}
	if len(chips) != len(want) {
		t.Fatalf("got %d chips, want %d", len(chips), len(want))
	}
	for i, w := range want {
		if chips[i].Appointment.Title != w {
			t.Errorf("chip %d = %q, want %q", i, chips[i].Appointment.Title, w)
		}
	}
	if chips[0].TimeLabel() != "8:00" {
		t.Errorf("TimeLabel() = %q", chips[0].TimeLabel())
	}
}

func TestColorIsDerivedFromID(t *testing.T) {
	for id := int64(1); id <= 50; id++ {
		first, err := Color(id)
		if err != nil {
			t.Fatalf("Color(%d): %v", id, err)
		}
		again, _ := Color(id)
		if first != again {
			t.Errorf("Color(%d) not stable: %s vs %s", id, first, again)
		}
		if first != Palette[id%int64(len(Palette))] {
			t.Errorf("Color(%d) = %s, want %s", id, first, Palette[id%int64(len(Palette))])
		}
	}
}

func TestColorMissingID(t *testing.T) {
	if _, err := Color(0); !errors.Is(err, ErrMissingID) {
		t.Errorf("Color(0) err = %v, want ErrMissingID", err)
	}
}

func TestBuildReportsAppointmentsWithoutID(t *testing.T) {
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		appt(0, "ghost", time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)),
		appt(8, "real", time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)),
	}

	m, err := Build(ref, appts, ref)
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("err = %v, want ErrMissingID", err)
	}
	if m == nil {
		t.Fatal("month should still be returned")
	}
	for _, c := range m.Cells {
		for _, chip := range c.Appointments {
			if chip.Appointment.AppointmentID == 0 {
				t.Error("appointment without id rendered")
			}
		}
	}
}
