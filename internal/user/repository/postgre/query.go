package postgres

import (
	"context"
	"fmt"
	"strings"

	"tasktrack-api/internal/user/repository"
	postgresPkg "tasktrack-api/pkg/postgre"
)

const userColumns = `id, email, password, first_name, last_name, patronymic, role, created_at, updated_at`

// buildWhere turns a filter into a WHERE clause with positional args.
func (r *implRepository) buildWhere(ctx context.Context, f repository.Filter) (string, []interface{}, error) {
	var (
		conds []string
		args  []interface{}
	)

	if len(f.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.IDs); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.buildWhere.ValidateUUIDs: %v", err)
			return "", nil, err
		}
		placeholders := make([]string, len(f.IDs))
		for i, id := range f.IDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
	}

	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
