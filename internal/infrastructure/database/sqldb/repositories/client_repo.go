package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

type sqlClientRepo struct {
	conn     *sqldb.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewClientRepo builds the SQL-backed client repository.
func NewClientRepo(conn *sqldb.Connection, log logging.Logger) client.Repository {
	return &sqlClientRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *sqlClientRepo) Create(ctx context.Context, c *client.Client) error {
	if err := client.Validate(c); err != nil {
		return err
	}
	if c.ID != nil {
		return errors.InvalidEntity("client identifier is already set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO client (fullname, phone) VALUES ($1, $2) RETURNING id`,
		c.FullName, c.PhoneNumber,
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to insert client")
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	c.ID = &id
	r.log.Debug("client created", logging.Int64("id", id))
	return nil
}

func (r *sqlClientRepo) Update(ctx context.Context, c *client.Client) error {
	if err := client.Validate(c); err != nil {
		return err
	}
	if c.ID == nil {
		return errors.InvalidEntity("client identifier is not set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE client SET fullname = $1, phone = $2 WHERE id = $3`,
		c.FullName, c.PhoneNumber, *c.ID,
	)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to update client")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", *c.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("client updated", logging.Int64("id", *c.ID))
	return nil
}

func (r *sqlClientRepo) Delete(ctx context.Context, c *client.Client) error {
	if err := client.Validate(c); err != nil {
		return err
	}
	if c.ID == nil {
		return errors.InvalidEntity("client identifier is not set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM client WHERE id = $1`, *c.ID)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to delete client")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", *c.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("client deleted", logging.Int64("id", *c.ID))
	return nil
}

func (r *sqlClientRepo) GetAll(ctx context.Context) ([]*client.Client, error) {
	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, fullname, phone FROM client ORDER BY id`)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query clients")
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *sqlClientRepo) FindByName(ctx context.Context, name string) ([]*client.Client, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, fullname, phone FROM client WHERE LOWER(fullname) LIKE $1 ORDER BY id`,
		pattern,
	)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query clients by name")
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *sqlClientRepo) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	row := r.executor.QueryRowContext(ctx,
		`SELECT id, fullname, phone FROM client WHERE id = $1`, id)

	c, err := scanClient(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.StoreFault(err, "failed to read client")
	}
	return c, nil
}

func collectClients(rows *sql.Rows) ([]*client.Client, error) {
	var out []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, errors.StoreFault(err, "failed to scan client row")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFault(err, "failed to iterate client rows")
	}
	return out, nil
}

func scanClient(s scanner) (*client.Client, error) {
	var (
		id       int64
		fullName string
		phone    string
	)
	if err := s.Scan(&id, &fullName, &phone); err != nil {
		return nil, err
	}
	return &client.Client{ID: &id, FullName: fullName, PhoneNumber: phone}, nil
}
