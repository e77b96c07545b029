package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/locale"
)

var (
	assignee = Viewer{ID: "user_1", Role: "USER"}
	manager  = Viewer{ID: "boss_1", Role: "BOSS"}
)

func task(assigneeID, status string) realtime.TaskPayload {
	return realtime.TaskPayload{
		ID:           "task_1",
		Title:        "Prepare quarterly report",
		AssigneeID:   assigneeID,
		AssigneeName: "Ivan Petrov",
		Status:       status,
	}
}

func TestDecideTaskCreatedForAssignee(t *testing.T) {
	effect := DecideTaskCreated(assignee, locale.RU, task("user_1", "ASSIGNED"))

	assert.Equal(t, SoundNewTask, effect.Sound)
	assert.True(t, effect.ShowDesktop)
	assert.Equal(t, "Новая задача", effect.Title)
	assert.Contains(t, effect.Body, "Prepare quarterly report")
}

func TestDecideTaskCreatedForManager(t *testing.T) {
	effect := DecideTaskCreated(manager, locale.RU, task("user_1", "ASSIGNED"))

	// Managers get a desktop notification but no sound
	assert.Equal(t, SoundNone, effect.Sound)
	assert.True(t, effect.ShowDesktop)
	assert.Contains(t, effect.Body, "Ivan Petrov")
}

func TestDecideTaskCreatedIgnoresOtherUsersTasks(t *testing.T) {
	effect := DecideTaskCreated(assignee, locale.RU, task("user_2", "ASSIGNED"))
	assert.True(t, effect.IsZero())
}

func TestDecideTaskCreatedIgnoresManagersOwnTask(t *testing.T) {
	effect := DecideTaskCreated(manager, locale.RU, task("boss_1", "ASSIGNED"))
	assert.True(t, effect.IsZero())
}

func TestDecideStatusChangedCompletedForAssignee(t *testing.T) {
	effect := DecideStatusChanged(assignee, locale.RU, "UNDER_REVIEW", task("user_1", "COMPLETED"))

	assert.Equal(t, SoundSuccess, effect.Sound)
	assert.True(t, effect.ShowDesktop)
	assert.Equal(t, "Задача завершена", effect.Title)
}

func TestDecideStatusChangedRevisionForAssignee(t *testing.T) {
	effect := DecideStatusChanged(assignee, locale.RU, "UNDER_REVIEW", task("user_1", "REVISION"))

	assert.Equal(t, SoundNone, effect.Sound)
	assert.True(t, effect.ShowDesktop)
	assert.Equal(t, "Задача возвращена на доработку", effect.Title)
}

func TestDecideStatusChangedForManager(t *testing.T) {
	effect := DecideStatusChanged(manager, locale.RU, "ASSIGNED", task("user_1", "IN_PROGRESS"))
	assert.True(t, effect.ShowDesktop)
	assert.Equal(t, "Задача взята в работу", effect.Title)

	effect = DecideStatusChanged(manager, locale.RU, "IN_PROGRESS", task("user_1", "UNDER_REVIEW"))
	assert.True(t, effect.ShowDesktop)
	assert.Equal(t, "Отчет загружен", effect.Title)
}

func TestDecideStatusChangedIgnoresUnchangedStatus(t *testing.T) {
	effect := DecideStatusChanged(manager, locale.RU, "IN_PROGRESS", task("user_1", "IN_PROGRESS"))
	assert.True(t, effect.IsZero())
}

func TestDecideStatusChangedAssigneeIgnoresIntermediateStates(t *testing.T) {
	// Taking your own task into progress is not a notification
	effect := DecideStatusChanged(assignee, locale.RU, "ASSIGNED", task("user_1", "IN_PROGRESS"))
	assert.True(t, effect.IsZero())
}

func TestDecideFallsBackToEnglish(t *testing.T) {
	effect := DecideTaskCreated(assignee, "de", task("user_1", "ASSIGNED"))
	assert.Equal(t, "New task", effect.Title)
}
