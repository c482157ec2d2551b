package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

type sqlPropertyRepo struct {
	conn     *sqldb.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPropertyRepo builds the SQL-backed property repository.
func NewPropertyRepo(conn *sqldb.Connection, log logging.Logger) property.Repository {
	return &sqlPropertyRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *sqlPropertyRepo) Create(ctx context.Context, p *property.Property) error {
	if err := property.Validate(p); err != nil {
		return err
	}
	if p.ID != nil {
		return errors.InvalidEntity("property identifier is already set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO property (area, price, type, address) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Area, p.Price, string(p.Type), p.Address,
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to insert property")
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	p.ID = &id
	r.log.Debug("property created", logging.Int64("id", id))
	return nil
}

func (r *sqlPropertyRepo) Update(ctx context.Context, p *property.Property) error {
	if err := property.Validate(p); err != nil {
		return err
	}
	if p.ID == nil {
		return errors.InvalidEntity("property identifier is not set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE property SET area = $1, price = $2, type = $3, address = $4 WHERE id = $5`,
		p.Area, p.Price, string(p.Type), p.Address, *p.ID,
	)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to update property")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", *p.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("property updated", logging.Int64("id", *p.ID))
	return nil
}

func (r *sqlPropertyRepo) Delete(ctx context.Context, p *property.Property) error {
	if err := property.Validate(p); err != nil {
		return err
	}
	if p.ID == nil {
		return errors.InvalidEntity("property identifier is not set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM property WHERE id = $1`, *p.ID)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to delete property")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", *p.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("property deleted", logging.Int64("id", *p.ID))
	return nil
}

func (r *sqlPropertyRepo) GetAll(ctx context.Context) ([]*property.Property, error) {
	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, area, price, type, address FROM property ORDER BY id`)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query properties")
	}
	defer rows.Close()

	return collectProperties(rows)
}

func (r *sqlPropertyRepo) FindByAddress(ctx context.Context, address string) ([]*property.Property, error) {
	pattern := "%" + strings.ToLower(address) + "%"
	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, area, price, type, address FROM property WHERE LOWER(address) LIKE $1 ORDER BY id`,
		pattern,
	)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query properties by address")
	}
	defer rows.Close()

	return collectProperties(rows)
}

func (r *sqlPropertyRepo) FindByPrice(ctx context.Context, price float64) ([]*property.Property, error) {
	if price <= 0 {
		return nil, errors.InvalidArgument("price must be positive")
	}

	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, area, price, type, address FROM property WHERE price >= $1 AND price <= $2 ORDER BY id`,
		price-property.PriceBand, price+property.PriceBand,
	)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query properties by price")
	}
	defer rows.Close()

	return collectProperties(rows)
}

func (r *sqlPropertyRepo) GetByID(ctx context.Context, id int64) (*property.Property, error) {
	row := r.executor.QueryRowContext(ctx,
		`SELECT id, area, price, type, address FROM property WHERE id = $1`, id)

	p, err := scanProperty(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.StoreFault(err, "failed to read property")
	}
	return p, nil
}

func collectProperties(rows *sql.Rows) ([]*property.Property, error) {
	var out []*property.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, errors.StoreFault(err, "failed to scan property row")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFault(err, "failed to iterate property rows")
	}
	return out, nil
}

func scanProperty(s scanner) (*property.Property, error) {
	var (
		id       int64
		area     float64
		price    float64
		typeName string
		address  string
	)
	if err := s.Scan(&id, &area, &price, &typeName, &address); err != nil {
		return nil, err
	}
	return &property.Property{
		ID:      &id,
		Area:    area,
		Price:   price,
		Type:    property.Type(typeName),
		Address: address,
	}, nil
}
