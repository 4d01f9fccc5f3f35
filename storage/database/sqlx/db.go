package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

// sqlDate is a calendar day stored as YYYY-MM-DD. The zero value is stored as NULL.
type sqlDate time.Time

func (d sqlDate) Value() (driver.Value, error) {
	t := time.Time(d)
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(calendar.DayLayout), nil
}

func (d *sqlDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = sqlDate{}
	case time.Time:
		*d = sqlDate(calendar.Day(v))
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("sqlDate: cannot scan %T", src)
	}
	return nil
}

func (d *sqlDate) parse(s string) error {
	t, err := calendar.ParseDay(s)
	if err != nil {
		return errors.Wrap(err, "sqlDate")
	}
	*d = sqlDate(calendar.Day(t))
	return nil
}

func (d sqlDate) Time() time.Time { return time.Time(d) }

// insert runs an INSERT ... RETURNING id query and returns the new id.
func insert(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int, error) {
	q, args, err := db.BindNamed(query, arg)
	if err != nil {
		return 0, err
	}
	var id int
	if err = db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// update runs a named UPDATE query and fails with a *core.NotFoundError if no row matched.
func update(ctx context.Context, db *sqlx.DB, entity string, id int, query string, arg interface{}) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return err
	}
	return checkAffected(res, entity, id)
}

func remove(ctx context.Context, db *sqlx.DB, entity, table string, id int) (bool, error) {
	res, err := db.ExecContext(ctx, db.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	if err = checkAffected(res, entity, id); err != nil {
		return false, err
	}
	return true, nil
}

func get(ctx context.Context, db *sqlx.DB, dest interface{}, entity, query string, id int) error {
	err := db.GetContext(ctx, dest, db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.NewNotFoundError(entity, id)
	}
	return err
}

func checkAffected(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.NewNotFoundError(entity, id)
	}
	return nil
}
