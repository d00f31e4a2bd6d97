package calendar

import (
	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

// UnassignedLabel is the sentinel shown when no teacher can be determined.
const UnassignedLabel = "Unassigned"

// Display priority when several role assignments coexist for a class.
// Unknown roles rank below all known ones but still beat nothing at all.
var rolePriority = map[models.AssignmentRole]int{
	models.RoleInstructor:  3,
	models.RoleHeadTeacher: 2,
	models.RoleAssistant:   1,
}

// Resolver determines the teacher of record for a session. It is pure:
// both the teacher directory and the assignments are pre-loaded in memory.
type Resolver struct {
	directory map[string]string
}

// NewResolver indexes the teacher directory by id.
func NewResolver(teachers []models.Teacher) Resolver {
	directory := make(map[string]string, len(teachers))
	for _, t := range teachers {
		directory[t.ID] = t.FullName
	}
	return Resolver{directory: directory}
}

// Resolve returns the displayed teacher for the session.
//
// An explicit teacher on the session always wins. Otherwise the class
// assignments are ranked Instructor > HeadTeacher > Assistant >
// first-available; the assignment's own cached name is the fallback when
// the directory lookup misses. With nothing to go on, the unassigned
// sentinel is returned.
func (r Resolver) Resolve(s Session, assignments []models.TeacherAssignment) (string, string) {
	if s.TeacherID != nil && *s.TeacherID != "" {
		id := *s.TeacherID
		if name, ok := r.directory[id]; ok {
			return id, name
		}
		return id, UnassignedLabel
	}

	best := -1
	var pick *models.TeacherAssignment
	for i := range assignments {
		p := rolePriority[assignments[i].Role]
		if p > best {
			best = p
			pick = &assignments[i]
		}
	}
	if pick == nil {
		return "", UnassignedLabel
	}

	if name, ok := r.directory[pick.TeacherID]; ok {
		return pick.TeacherID, name
	}
	if pick.TeacherName != nil && *pick.TeacherName != "" {
		return pick.TeacherID, *pick.TeacherName
	}
	return pick.TeacherID, UnassignedLabel
}
