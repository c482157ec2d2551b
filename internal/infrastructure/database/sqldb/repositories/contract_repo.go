package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

type sqlContractRepo struct {
	conn       *sqldb.Connection
	log        logging.Logger
	executor   queryExecutor
	clients    client.Repository
	properties property.Repository
}

// NewContractRepo builds the SQL-backed contract repository.  Contract rows
// store client and property identifiers only; reads resolve them back into
// full entities through the given repositories.
func NewContractRepo(conn *sqldb.Connection, clients client.Repository, properties property.Repository, log logging.Logger) contract.Repository {
	return &sqlContractRepo{
		conn:       conn,
		log:        log,
		executor:   conn.DB(),
		clients:    clients,
		properties: properties,
	}
}

func (r *sqlContractRepo) Create(ctx context.Context, c *contract.Contract) error {
	if err := contract.Validate(c); err != nil {
		return err
	}
	if c.ID != nil {
		return errors.InvalidEntity("contract identifier is already set")
	}
	if c.Client.ID == nil {
		return errors.InvalidEntity("contract client is not stored")
	}
	if c.Property.ID == nil {
		return errors.InvalidEntity("contract property is not stored")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO contract (clientid, propertyid, dateofsigning) VALUES ($1, $2, $3) RETURNING id`,
		*c.Client.ID, *c.Property.ID, dateOnly(c.DateOfSigning),
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to insert contract")
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	c.ID = &id
	r.log.Debug("contract created", logging.Int64("id", id))
	return nil
}

func (r *sqlContractRepo) Update(ctx context.Context, c *contract.Contract) error {
	if err := contract.Validate(c); err != nil {
		return err
	}
	if c.ID == nil {
		return errors.InvalidEntity("contract identifier is not set")
	}

	// The client and property references are immutable, only the signing
	// date is written.
	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE contract SET dateofsigning = $1 WHERE id = $2`,
		dateOnly(c.DateOfSigning), *c.ID,
	)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to update contract")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", *c.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("contract updated", logging.Int64("id", *c.ID))
	return nil
}

func (r *sqlContractRepo) Delete(ctx context.Context, c *contract.Contract) error {
	if err := contract.Validate(c); err != nil {
		return err
	}
	if c.ID == nil {
		return errors.InvalidEntity("contract identifier is not set")
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFault(err, "failed to begin transaction")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM contract WHERE id = $1`, *c.ID)
	if err != nil {
		_ = tx.Rollback()
		return errors.StoreFault(err, "failed to delete contract")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		_ = tx.Rollback()
		return errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", *c.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreFault(err, "failed to commit transaction")
	}

	r.log.Debug("contract deleted", logging.Int64("id", *c.ID))
	return nil
}

func (r *sqlContractRepo) GetAll(ctx context.Context) ([]*contract.Contract, error) {
	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, clientid, propertyid, dateofsigning FROM contract ORDER BY id`)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query contracts")
	}
	defer rows.Close()

	return r.collectContracts(ctx, rows)
}

func (r *sqlContractRepo) FindByClient(ctx context.Context, c *client.Client) ([]*contract.Contract, error) {
	if c == nil {
		return nil, errors.InvalidArgument("client is nil")
	}
	if c.ID == nil {
		return nil, errors.InvalidArgument("client identifier is not set")
	}

	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, clientid, propertyid, dateofsigning FROM contract WHERE clientid = $1 ORDER BY id`,
		*c.ID,
	)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query contracts by client")
	}
	defer rows.Close()

	return r.collectContracts(ctx, rows)
}

func (r *sqlContractRepo) FindByProperty(ctx context.Context, p *property.Property) ([]*contract.Contract, error) {
	if p == nil {
		return nil, errors.InvalidArgument("property is nil")
	}
	if p.ID == nil {
		return nil, errors.InvalidArgument("property identifier is not set")
	}

	rows, err := r.executor.QueryContext(ctx,
		`SELECT id, clientid, propertyid, dateofsigning FROM contract WHERE propertyid = $1 ORDER BY id`,
		*p.ID,
	)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to query contracts by property")
	}
	defer rows.Close()

	return r.collectContracts(ctx, rows)
}

func (r *sqlContractRepo) GetByID(ctx context.Context, id int64) (*contract.Contract, error) {
	row := r.executor.QueryRowContext(ctx,
		`SELECT id, clientid, propertyid, dateofsigning FROM contract WHERE id = $1`, id)

	rec, err := scanContractRow(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.StoreFault(err, "failed to read contract")
	}
	return r.resolve(ctx, rec)
}

func (r *sqlContractRepo) ExistsForClient(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	err := r.executor.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM contract WHERE clientid = $1)`, clientID,
	).Scan(&exists)
	if err != nil {
		return false, errors.StoreFault(err, "failed to check contracts for client")
	}
	return exists, nil
}

func (r *sqlContractRepo) ExistsForProperty(ctx context.Context, propertyID int64) (bool, error) {
	var exists bool
	err := r.executor.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM contract WHERE propertyid = $1)`, propertyID,
	).Scan(&exists)
	if err != nil {
		return false, errors.StoreFault(err, "failed to check contracts for property")
	}
	return exists, nil
}

// contractRow is a contract row before reference resolution.
type contractRow struct {
	id         int64
	clientID   int64
	propertyID int64
	signed     time.Time
}

func scanContractRow(s scanner) (*contractRow, error) {
	var rec contractRow
	if err := s.Scan(&rec.id, &rec.clientID, &rec.propertyID, &rec.signed); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqlContractRepo) collectContracts(ctx context.Context, rows *sql.Rows) ([]*contract.Contract, error) {
	var recs []*contractRow
	for rows.Next() {
		rec, err := scanContractRow(rows)
		if err != nil {
			return nil, errors.StoreFault(err, "failed to scan contract row")
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFault(err, "failed to iterate contract rows")
	}

	var out []*contract.Contract
	for _, rec := range recs {
		c, err := r.resolve(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// resolve turns a raw contract row into a full entity by loading the
// referenced client and property.  The schema's foreign keys guarantee both
// exist; a miss here means the store is corrupted.
func (r *sqlContractRepo) resolve(ctx context.Context, rec *contractRow) (*contract.Contract, error) {
	cl, err := r.clients.GetByID(ctx, rec.clientID)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, errors.Newf(errors.KindStoreFault, "contract %d references missing client %d", rec.id, rec.clientID)
	}

	pr, err := r.properties.GetByID(ctx, rec.propertyID)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, errors.Newf(errors.KindStoreFault, "contract %d references missing property %d", rec.id, rec.propertyID)
	}

	id := rec.id
	return &contract.Contract{
		ID:            &id,
		Client:        cl,
		Property:      pr,
		DateOfSigning: rec.signed,
	}, nil
}

// dateOnly truncates an instant to its calendar date in UTC, the granularity
// contracts are stored at.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
