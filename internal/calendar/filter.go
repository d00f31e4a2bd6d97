package calendar

import "strings"

// ScopeKind enumerates the date-filtering modes of the session list.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeSingleDate
	ScopeWindow
)

// Scope is the active date filter: everything, one day, or a window.
type Scope struct {
	Kind  ScopeKind
	Date  LocalDate
	Start LocalDate
	End   LocalDate
}

// AllScope matches every session.
func AllScope() Scope {
	return Scope{Kind: ScopeAll}
}

// DateScope matches sessions on exactly one local date.
func DateScope(d LocalDate) Scope {
	return Scope{Kind: ScopeSingleDate, Date: d}
}

// WindowScope matches sessions within an inclusive date window.
func WindowScope(start, end LocalDate) Scope {
	return Scope{Kind: ScopeWindow, Start: start, End: end}
}

func (sc Scope) matches(d LocalDate) bool {
	switch sc.Kind {
	case ScopeSingleDate:
		return d.Equal(sc.Date)
	case ScopeWindow:
		return Range{Start: sc.Start, End: sc.End}.Contains(d)
	default:
		return true
	}
}

// Query is the composable filter over a session list. All set predicates
// are AND-ed together; empty values are no-ops.
type Query struct {
	Scope  Scope
	Text   string
	Status string
	Room   string
}

// Filter returns the sessions matching the query, order preserved. The
// result is deterministic for identical inputs.
func Filter(sessions []Session, q Query) []Session {
	terms := splitTerms(q.Text)

	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !q.Scope.matches(s.Date) {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		if q.Room != "" && s.RoomName != q.Room {
			continue
		}
		if !matchesTerms(s, terms) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func splitTerms(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// matchesTerms requires every term to hit at least one searchable field
// (OR across fields per term, AND across terms).
func matchesTerms(s Session, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	fields := []string{
		strings.ToLower(s.Date.String()),
		strings.ToLower(s.Date.Display()),
		strings.ToLower(s.TeacherName),
		strings.ToLower(s.RoomName),
		strings.ToLower(s.Status),
		strings.ToLower(s.TimeRange()),
		strings.ToLower(s.Note),
	}
	for _, term := range terms {
		hit := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
