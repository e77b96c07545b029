package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user/repository"
	"tasktrack-api/pkg/paginator"
	postgresPkg "tasktrack-api/pkg/postgre"
)

const uniqueViolation = "23505"

func scanUser(row interface{ Scan(...interface{}) error }) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.Patronymic,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.User, error) {
	usr := opts.User
	if usr.ID == "" {
		usr.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(usr.ID); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Create.IsUUID: %v", err)
		return model.User{}, err
	}

	now := r.clock()
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		usr.ID, usr.Email, usr.Password, usr.FirstName, usr.LastName,
		usr.Patronymic, usr.Role, now, now,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.User{}, repository.ErrDuplicate
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Create.Insert: %v", err)
		return model.User{}, errors.Wrap(err, "insert user")
	}

	return created, nil
}

func (r *implRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.User, error) {
	usr := opts.User
	if err := postgresPkg.IsUUID(usr.ID); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Update.IsUUID: %v", err)
		return model.User{}, err
	}

	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, patronymic = $4, role = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRowContext(ctx, query,
		usr.ID, usr.FirstName, usr.LastName, usr.Patronymic, usr.Role, r.clock(),
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Update.Update: %v", err)
		return model.User{}, errors.Wrap(err, "update user")
	}

	return updated, nil
}

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.User, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.IsUUID: %v", err)
		return model.User{}, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	usr, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.One: %v", err)
		return model.User{}, errors.Wrap(err, "get user")
	}

	return usr, nil
}

func (r *implRepository) GetOne(ctx context.Context, sc model.Scope, opts repository.GetOneOptions) (model.User, error) {
	var (
		query string
		arg   interface{}
	)

	switch {
	case opts.ID != "":
		if err := postgresPkg.IsUUID(opts.ID); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.GetOne.IsUUID: %v", err)
			return model.User{}, err
		}
		query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
		arg = opts.ID
	case opts.Email != "":
		query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
		arg = opts.Email
	default:
		return model.User{}, repository.ErrNotFound
	}

	usr, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.GetOne.One: %v", err)
		return model.User{}, errors.Wrap(err, "get user")
	}

	return usr, nil
}

func (r *implRepository) List(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.User, error) {
	where, args, err := r.buildWhere(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Query: %v", err)
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	var res []model.User
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.List.Scan: %v", err)
			return nil, errors.Wrap(err, "scan user")
		}
		res = append(res, usr)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Rows: %v", err)
		return nil, errors.Wrap(err, "list users")
	}

	return res, nil
}

func (r *implRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.User, paginator.Paginator, error) {
	where, args, err := r.buildWhere(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count users")
	}

	page := opts.PaginateQuery
	page.Adjust()
	pageArgs := append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Get.Query: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get users")
	}
	defer rows.Close()

	var res []model.User
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.Get.Scan: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "scan user")
		}
		res = append(res, usr)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Get.Rows: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get users")
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     page.Limit,
		CurrentPage: page.Page,
	}

	return res, pag, nil
}
