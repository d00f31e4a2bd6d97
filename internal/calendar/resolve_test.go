package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

func testDirectory() []models.Teacher {
	return []models.Teacher{
		{ID: "3", FullName: "Nguyễn Văn An"},
		{ID: "9", FullName: "Trần Thị Bích"},
	}
}

func TestResolveRolePriorityIgnoresOrder(t *testing.T) {
	r := NewResolver(testDirectory())
	assignments := []models.TeacherAssignment{
		{ClassID: "class-1", TeacherID: "9", Role: models.RoleAssistant},
		{ClassID: "class-1", TeacherID: "3", Role: models.RoleInstructor},
	}

	id, name := r.Resolve(Session{ClassID: "class-1"}, assignments)
	assert.Equal(t, "3", id)
	assert.Equal(t, "Nguyễn Văn An", name)

	// Reversed order must not change the outcome.
	reversed := []models.TeacherAssignment{assignments[1], assignments[0]}
	id, name = r.Resolve(Session{ClassID: "class-1"}, reversed)
	assert.Equal(t, "3", id)
	assert.Equal(t, "Nguyễn Văn An", name)
}

func TestResolveExplicitTeacherWins(t *testing.T) {
	r := NewResolver(testDirectory())
	assignments := []models.TeacherAssignment{
		{ClassID: "class-1", TeacherID: "3", Role: models.RoleInstructor},
	}
	explicit := "9"

	id, name := r.Resolve(Session{ClassID: "class-1", TeacherID: &explicit}, assignments)
	assert.Equal(t, "9", id)
	assert.Equal(t, "Trần Thị Bích", name)
}

func TestResolveHeadTeacherBeatsAssistant(t *testing.T) {
	r := NewResolver(testDirectory())
	assignments := []models.TeacherAssignment{
		{ClassID: "class-1", TeacherID: "9", Role: models.RoleAssistant},
		{ClassID: "class-1", TeacherID: "3", Role: models.RoleHeadTeacher},
	}

	id, _ := r.Resolve(Session{ClassID: "class-1"}, assignments)
	assert.Equal(t, "3", id)
}

func TestResolveFirstAvailableForUnknownRoles(t *testing.T) {
	r := NewResolver(testDirectory())
	assignments := []models.TeacherAssignment{
		{ClassID: "class-1", TeacherID: "9", Role: "SUBSTITUTE"},
		{ClassID: "class-1", TeacherID: "3", Role: "VOLUNTEER"},
	}

	id, _ := r.Resolve(Session{ClassID: "class-1"}, assignments)
	assert.Equal(t, "9", id, "ties keep the first assignment")
}

func TestResolveFallsBackToAssignmentName(t *testing.T) {
	r := NewResolver(nil) // empty directory
	cached := "Lê Văn Cường"
	assignments := []models.TeacherAssignment{
		{ClassID: "class-1", TeacherID: "77", TeacherName: &cached, Role: models.RoleInstructor},
	}

	id, name := r.Resolve(Session{ClassID: "class-1"}, assignments)
	assert.Equal(t, "77", id)
	assert.Equal(t, "Lê Văn Cường", name)
}

func TestResolveUnassignedSentinel(t *testing.T) {
	r := NewResolver(testDirectory())

	id, name := r.Resolve(Session{ClassID: "class-1"}, nil)
	assert.Equal(t, "", id)
	assert.Equal(t, UnassignedLabel, name)
}
