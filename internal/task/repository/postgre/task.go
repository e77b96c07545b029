package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/task/repository"
	"tasktrack-api/pkg/paginator"
	postgresPkg "tasktrack-api/pkg/postgre"
)

func scanTask(row interface{ Scan(...interface{}) error }) (model.Task, error) {
	var (
		t model.Task

		reportName       null.String
		reportURL        null.String
		reportUploadedAt null.Time
		reportSize       null.Int64
		reportComment    null.String
		reportIsText     null.Bool

		assignee profileScan
		creator  profileScan
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Deadline, &t.Status,
		&t.AssigneeID, &t.CreatedBy, &t.UpdatedBy,
		&reportName, &reportURL, &reportUploadedAt, &reportSize, &reportComment, &reportIsText,
		&t.CreatedAt, &t.UpdatedAt,
		&assignee.id, &assignee.email, &assignee.firstName, &assignee.lastName, &assignee.role,
		&creator.id, &creator.email, &creator.firstName, &creator.lastName, &creator.role,
	)
	if err != nil {
		return model.Task{}, err
	}

	if reportName.Valid {
		t.Report = &model.ReportFile{
			Name:         reportName.String,
			URL:          reportURL.String,
			UploadedAt:   reportUploadedAt.Time,
			Size:         reportSize.Int64,
			Comment:      reportComment,
			IsTextReport: reportIsText.Bool,
		}
	}

	t.Assignee = assignee.toUser()
	t.Creator = creator.toUser()

	return t, nil
}

// profileScan holds the nullable columns of a joined user profile.
type profileScan struct {
	id        null.String
	email     null.String
	firstName null.String
	lastName  null.String
	role      null.String
}

func (p profileScan) toUser() *model.User {
	if !p.id.Valid {
		return nil
	}
	return &model.User{
		ID:        p.id.String,
		Email:     p.email.String,
		FirstName: p.firstName.String,
		LastName:  p.lastName.String,
		Role:      model.Role(p.role.String),
	}
}

func reportColumns(t model.Task) (null.String, null.String, null.Time, null.Int64, null.String, null.Bool) {
	if t.Report == nil {
		return null.String{}, null.String{}, null.Time{}, null.Int64{}, null.String{}, null.Bool{}
	}
	return null.StringFrom(t.Report.Name),
		null.NewString(t.Report.URL, t.Report.URL != ""),
		null.TimeFrom(t.Report.UploadedAt),
		null.Int64From(t.Report.Size),
		t.Report.Comment,
		null.BoolFrom(t.Report.IsTextReport)
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Task, error) {
	tsk := opts.Task
	if tsk.ID == "" {
		tsk.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(tsk.ID); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Create.IsUUID: %v", err)
		return model.Task{}, err
	}

	now := r.clock()
	rName, rURL, rUploadedAt, rSize, rComment, rIsText := reportColumns(tsk)

	query := `
		INSERT INTO tasks (id, title, description, priority, deadline, status,
			assignee_id, created_by, updated_by,
			report_name, report_url, report_uploaded_at, report_size, report_comment, report_is_text,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		tsk.ID, tsk.Title, tsk.Description, tsk.Priority, tsk.Deadline, tsk.Status,
		tsk.AssigneeID, tsk.CreatedBy, tsk.UpdatedBy,
		rName, rURL, rUploadedAt, rSize, rComment, rIsText,
		now, now,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Create.Insert: %v", err)
		return model.Task{}, errors.Wrap(err, "insert task")
	}

	// Reload with the joined profiles.
	return r.Detail(ctx, sc, tsk.ID)
}

func (r *implRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.Task, error) {
	tsk := opts.Task
	if err := postgresPkg.IsUUID(tsk.ID); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Update.IsUUID: %v", err)
		return model.Task{}, err
	}

	rName, rURL, rUploadedAt, rSize, rComment, rIsText := reportColumns(tsk)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, deadline = $5, status = $6,
			assignee_id = $7, updated_by = $8,
			report_name = $9, report_url = $10, report_uploaded_at = $11,
			report_size = $12, report_comment = $13, report_is_text = $14,
			updated_at = $15
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		tsk.ID, tsk.Title, tsk.Description, tsk.Priority, tsk.Deadline, tsk.Status,
		tsk.AssigneeID, tsk.UpdatedBy,
		rName, rURL, rUploadedAt, rSize, rComment, rIsText,
		r.clock(),
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Update.Update: %v", err)
		return model.Task{}, errors.Wrap(err, "update task")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Update.RowsAffected: %v", err)
		return model.Task{}, errors.Wrap(err, "update task")
	}
	if rows == 0 {
		return model.Task{}, repository.ErrNotFound
	}

	return r.Detail(ctx, sc, tsk.ID)
}

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Detail.IsUUID: %v", err)
		return model.Task{}, err
	}

	tsk, err := scanTask(r.db.QueryRowContext(ctx, selectTask+` WHERE t.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Task{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.task.repository.postgres.Detail.One: %v", err)
		return model.Task{}, errors.Wrap(err, "get task")
	}

	return tsk, nil
}

func (r *implRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.Task, paginator.Paginator, error) {
	where, args, err := r.buildWhere(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks t` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count tasks")
	}

	page := opts.PaginateQuery
	page.Adjust()
	pageArgs := append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(selectTask+where+
		` ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Get.Query: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get tasks")
	}
	defer rows.Close()

	var res []model.Task
	for rows.Next() {
		tsk, err := scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.task.repository.postgres.Get.Scan: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "scan task")
		}
		res = append(res, tsk)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Get.Rows: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get tasks")
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     page.Limit,
		CurrentPage: page.Page,
	}

	return res, pag, nil
}

func (r *implRepository) Delete(ctx context.Context, sc model.Scope, id string) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Delete.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Delete.Delete: %v", err)
		return errors.Wrap(err, "delete task")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.task.repository.postgres.Delete.RowsAffected: %v", err)
		return errors.Wrap(err, "delete task")
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
