package calendar

import "time"

// Granularity selects the calendar navigation window size.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// WeekWindow returns the Monday-start week containing the anchor.
func WeekWindow(anchor LocalDate) (LocalDate, LocalDate) {
	// Monday-start: Sunday (0) sits at the end of the week.
	back := (anchor.Weekday() + 6) % 7
	start := anchor.AddDays(-back)
	return start, start.AddDays(6)
}

// MonthWindow returns the first and last day of the anchor's month.
func MonthWindow(anchor LocalDate) (LocalDate, LocalDate) {
	start := LocalDate{Year: anchor.Year, Month: anchor.Month, Day: 1}
	end := start.AddDays(daysInMonth(anchor.Year, anchor.Month) - 1)
	return start, end
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalises to this month's last day.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// View is the calendar scope state machine. It owns only the anchor date,
// granularity and the active scope; navigation never touches sessions.
// Text/status/room predicates are orthogonal and live in the Query.
type View struct {
	normalizer  Normalizer
	scope       Scope
	anchor      LocalDate
	granularity Granularity
}

// NewView starts in ShowAll with the anchor on today's local date.
func NewView(n Normalizer, now time.Time) *View {
	return &View{
		normalizer:  n,
		scope:       AllScope(),
		anchor:      n.Today(now),
		granularity: GranularityWeek,
	}
}

// Scope returns the active date scope.
func (v *View) Scope() Scope {
	return v.scope
}

// Anchor returns the navigation anchor date.
func (v *View) Anchor() LocalDate {
	return v.anchor
}

// Granularity returns the active window size.
func (v *View) Granularity() Granularity {
	return v.granularity
}

// SelectDate switches to single-date scope on d.
func (v *View) SelectDate(d LocalDate) {
	v.anchor = d
	v.scope = DateScope(d)
}

// ShowAll clears the date scope entirely.
func (v *View) ShowAll() {
	v.scope = AllScope()
}

// SetGranularity switches to a week or month window around the anchor.
func (v *View) SetGranularity(g Granularity) {
	if g != GranularityWeek && g != GranularityMonth {
		g = GranularityWeek
	}
	v.granularity = g
	v.applyWindow()
}

// Next advances the anchor one window forward and recomputes the scope.
func (v *View) Next() {
	v.shift(1)
}

// Previous moves the anchor one window back and recomputes the scope.
func (v *View) Previous() {
	v.shift(-1)
}

// GoToToday re-anchors on the current local date, keeping the granularity.
func (v *View) GoToToday(now time.Time) {
	v.anchor = v.normalizer.Today(now)
	v.applyWindow()
}

// IsToday reports whether d is the current local calendar date.
func (v *View) IsToday(d LocalDate, now time.Time) bool {
	return d.Equal(v.normalizer.Today(now))
}

func (v *View) shift(direction int) {
	switch v.granularity {
	case GranularityMonth:
		first := LocalDate{Year: v.anchor.Year, Month: v.anchor.Month, Day: 1}
		t := first.anchor().AddDate(0, direction, 0)
		v.anchor = LocalDate{Year: t.Year(), Month: t.Month(), Day: 1}
	default:
		v.anchor = v.anchor.AddDays(7 * direction)
	}
	v.applyWindow()
}

func (v *View) applyWindow() {
	var start, end LocalDate
	if v.granularity == GranularityMonth {
		start, end = MonthWindow(v.anchor)
	} else {
		start, end = WeekWindow(v.anchor)
	}
	v.scope = WindowScope(start, end)
}
