package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"laxin/internal/domain"
	"laxin/internal/listing"
)

// UserRepository wraps DB access for the users table.
type UserRepository struct {
	DB *sql.DB
}

const userSelectColumns = "id, phone, name, role, created_at, updated_at"

// whitelist of filterable/orderable fields -> columns
var userColumns = map[string]string{
	"id":         "id",
	"phone":      "phone",
	"name":       "name",
	"role":       "role",
	"created_at": "created_at",
}

// ByID loads one user. Missing rows come back as NotFoundError.
func (r UserRepository) ByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userSelectColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// Credentials loads a user plus its password hash for login verification.
// The hash never travels further than the caller's compare.
func (r UserRepository) Credentials(ctx context.Context, phone string) (domain.User, string, error) {
	var (
		u    domain.User
		hash string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, phone, name, role, password_hash, created_at, updated_at FROM users WHERE phone = ?`, phone).
		Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &hash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, "", err
	}
	return u, hash, nil
}

// PhoneExists reports whether a user with this phone is already registered.
func (r UserRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE phone = ?`, phone).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a user and returns the new id.
func (r UserRepository) Create(ctx context.Context, u domain.User, passwordHash string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (phone, name, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, NOW(), NOW())`,
		u.Phone, u.Name, passwordHash, int(u.Role))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the mutable columns of a user row.
func (r UserRepository) Update(ctx context.Context, u domain.User) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = ?, role = ?, updated_at = NOW() WHERE id = ?`,
		u.Name, int(u.Role), u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// Delete removes a user row.
func (r UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// Collection exposes the users table as a queryable collection for the
// listing pipeline.
func (r UserRepository) Collection() listing.Collection[domain.User] {
	return userCollection{db: r.DB}
}

type userCond struct {
	clause string
	arg    any
}

// userCollection builds one parameterized SELECT over users. Field names go
// through the column whitelist; an unknown field or operator poisons the
// collection and surfaces when it is read.
type userCollection struct {
	db     *sql.DB
	conds  []userCond
	orders []string
	err    error
}

func (c userCollection) Where(field string, op listing.Op, value any) listing.Collection[domain.User] {
	if c.err != nil {
		return c
	}
	column, ok := userColumns[field]
	if !ok {
		c.err = fmt.Errorf("unknown filter field %q", field)
		return c
	}

	switch op {
	case listing.OpEq, listing.OpLt, listing.OpLte, listing.OpGt, listing.OpGte:
		c.conds = appendCond(c.conds, userCond{clause: column + " " + string(op) + " ?", arg: value})
	case listing.OpContains:
		c.conds = appendCond(c.conds, userCond{clause: column + " LIKE ?", arg: "%" + fmt.Sprint(value) + "%"})
	default:
		c.err = fmt.Errorf("unknown operator %q", op)
	}
	return c
}

func (c userCollection) OrderBy(field string, desc bool) listing.Collection[domain.User] {
	if c.err != nil {
		return c
	}
	column, ok := userColumns[field]
	if !ok {
		// unknown ordering fields are ignored, matching filter forwards-compat
		return c
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	c.orders = append(append([]string{}, c.orders...), column+" "+direction)
	return c
}

func (c userCollection) Count(ctx context.Context) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	query, args := c.build("SELECT COUNT(*) FROM users", false)
	var n int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c userCollection) Slice(ctx context.Context, offset, limit int) ([]domain.User, error) {
	if c.err != nil {
		return nil, c.err
	}
	query, args := c.build("SELECT "+userSelectColumns+" FROM users", true)
	args = append(args, limit, offset)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (c userCollection) build(head string, withLimit bool) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(head)
	for i, cond := range c.conds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(cond.clause)
		args = append(args, cond.arg)
	}
	if withLimit {
		if len(c.orders) > 0 {
			b.WriteString(" ORDER BY " + strings.Join(c.orders, ", "))
		}
		b.WriteString(" LIMIT ? OFFSET ?")
	}
	return b.String(), args
}

func appendCond(conds []userCond, c userCond) []userCond {
	return append(append([]userCond{}, conds...), c)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
