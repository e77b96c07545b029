package postgres

import (
	"context"
	"fmt"
	"strings"

	"tasktrack-api/internal/task/repository"
	postgresPkg "tasktrack-api/pkg/postgre"
)

const taskColumns = `t.id, t.title, t.description, t.priority, t.deadline, t.status,
	t.assignee_id, t.created_by, t.updated_by,
	t.report_name, t.report_url, t.report_uploaded_at, t.report_size, t.report_comment, t.report_is_text,
	t.created_at, t.updated_at`

const profileColumns = `a.id, a.email, a.first_name, a.last_name, a.role,
	c.id, c.email, c.first_name, c.last_name, c.role`

const selectTask = `SELECT ` + taskColumns + `, ` + profileColumns + `
	FROM tasks t
	LEFT JOIN users a ON a.id = t.assignee_id
	LEFT JOIN users c ON c.id = t.created_by`

// buildWhere turns a filter into a WHERE clause with positional args.
func (r *implRepository) buildWhere(ctx context.Context, f repository.Filter) (string, []interface{}, error) {
	var (
		conds []string
		args  []interface{}
	)

	if f.AssigneeID != "" {
		if err := postgresPkg.IsUUID(f.AssigneeID); err != nil {
			r.l.Errorf(ctx, "internal.task.repository.postgres.buildWhere.IsUUID: %v", err)
			return "", nil, err
		}
		args = append(args, f.AssigneeID)
		conds = append(conds, fmt.Sprintf("t.assignee_id = $%d", len(args)))
	}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}

	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("t.priority = $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
