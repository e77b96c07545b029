package locale

// Display labels for task statuses, priorities, and user roles.
// Wire values are the English enum codes; these maps localize them
// for human-facing surfaces.

var statusLabels = map[string]map[string]string{
	EN: {
		"ASSIGNED":     "assigned",
		"IN_PROGRESS":  "in progress",
		"UNDER_REVIEW": "under review",
		"COMPLETED":    "completed",
		"REVISION":     "revision",
	},
	RU: {
		"ASSIGNED":     "назначено",
		"IN_PROGRESS":  "в работе",
		"UNDER_REVIEW": "на проверке",
		"COMPLETED":    "выполнено",
		"REVISION":     "доработка",
	},
}

var priorityLabels = map[string]map[string]string{
	EN: {
		"LOW":    "low",
		"MEDIUM": "medium",
		"HIGH":   "high",
	},
	RU: {
		"LOW":    "низкий",
		"MEDIUM": "средний",
		"HIGH":   "высокий",
	},
}

var roleLabels = map[string]map[string]string{
	EN: {
		"USER":  "user",
		"ADMIN": "administrator",
		"BOSS":  "manager",
	},
	RU: {
		"USER":  "пользователь",
		"ADMIN": "администратор",
		"BOSS":  "руководитель",
	},
}

func label(table map[string]map[string]string, lang, code string) string {
	if m, ok := table[lang]; ok {
		if l, ok := m[code]; ok {
			return l
		}
	}
	if l, ok := table[DefaultLang][code]; ok {
		return l
	}
	return code
}

// StatusLabel returns the display label for a task status code.
func StatusLabel(lang, status string) string {
	return label(statusLabels, lang, status)
}

// PriorityLabel returns the display label for a task priority code.
func PriorityLabel(lang, priority string) string {
	return label(priorityLabels, lang, priority)
}

// RoleLabel returns the display label for a user role code.
func RoleLabel(lang, role string) string {
	return label(roleLabels, lang, role)
}
