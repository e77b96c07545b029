package notify

import (
	"fmt"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/locale"
)

// DecideTaskCreated evaluates a task_created event for the viewer.
//
// An assignee gets a sound and a desktop notification for a task newly
// assigned to them. A manager gets a desktop notification about tasks
// created for someone else.
func DecideTaskCreated(viewer Viewer, lang string, task realtime.TaskPayload) Effect {
	if !viewer.IsManager() && task.AssigneeID == viewer.ID {
		return Effect{
			Sound:       SoundNewTask,
			ShowDesktop: true,
			Title:       text(lang, "new_task_title"),
			Body:        fmt.Sprintf(text(lang, "new_task_body"), task.Title),
		}
	}

	if viewer.IsManager() && task.AssigneeID != viewer.ID {
		return Effect{
			ShowDesktop: true,
			Title:       text(lang, "task_created_title"),
			Body:        fmt.Sprintf(text(lang, "task_created_body"), task.Title, task.AssigneeName),
		}
	}

	return Effect{}
}

// DecideStatusChanged evaluates a task_updated event that changed the task
// status from oldStatus.
//
// The assignee cares about completion and revision of their own tasks. A
// manager cares about progress and submitted reports on tasks assigned to
// someone else.
func DecideStatusChanged(viewer Viewer, lang string, oldStatus string, task realtime.TaskPayload) Effect {
	if oldStatus == task.Status {
		return Effect{}
	}

	if task.AssigneeID == viewer.ID {
		switch task.Status {
		case "COMPLETED":
			return Effect{
				Sound:       SoundSuccess,
				ShowDesktop: true,
				Title:       text(lang, "task_completed_title"),
				Body:        fmt.Sprintf(text(lang, "task_completed_body"), task.Title),
			}
		case "REVISION":
			return Effect{
				ShowDesktop: true,
				Title:       text(lang, "task_revision_title"),
				Body:        fmt.Sprintf(text(lang, "task_revision_body"), task.Title),
			}
		}
		return Effect{}
	}

	if viewer.IsManager() {
		switch task.Status {
		case "IN_PROGRESS":
			return Effect{
				ShowDesktop: true,
				Title:       text(lang, "task_in_progress_title"),
				Body:        fmt.Sprintf(text(lang, "task_in_progress_body"), task.AssigneeName, task.Title),
			}
		case "UNDER_REVIEW":
			return Effect{
				ShowDesktop: true,
				Title:       text(lang, "report_uploaded_title"),
				Body:        fmt.Sprintf(text(lang, "report_uploaded_body"), task.AssigneeName, task.Title),
			}
		}
	}

	return Effect{}
}

var texts = map[string]map[string]string{
	locale.RU: {
		"new_task_title":         "Новая задача",
		"new_task_body":          "Вам назначена задача: %s",
		"task_created_title":     "Новая задача создана",
		"task_created_body":      "Создана задача: %s для %s",
		"task_completed_title":   "Задача завершена",
		"task_completed_body":    "Задача «%s» успешно завершена!",
		"task_revision_title":    "Задача возвращена на доработку",
		"task_revision_body":     "Задача «%s» требует доработки",
		"task_in_progress_title": "Задача взята в работу",
		"task_in_progress_body":  "%s взял в работу: %s",
		"report_uploaded_title":  "Отчет загружен",
		"report_uploaded_body":   "%s загрузил отчет по задаче: %s",
	},
	locale.EN: {
		"new_task_title":         "New task",
		"new_task_body":          "You have been assigned a task: %s",
		"task_created_title":     "New task created",
		"task_created_body":      "Task created: %s for %s",
		"task_completed_title":   "Task completed",
		"task_completed_body":    "Task \"%s\" completed successfully!",
		"task_revision_title":    "Task returned for revision",
		"task_revision_body":     "Task \"%s\" needs revision",
		"task_in_progress_title": "Task taken into progress",
		"task_in_progress_body":  "%s started working on: %s",
		"report_uploaded_title":  "Report uploaded",
		"report_uploaded_body":   "%s uploaded a report for: %s",
	},
}

func text(lang, key string) string {
	if m, ok := texts[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return texts[locale.DefaultLang][key]
}
