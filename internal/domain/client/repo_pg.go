package client

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caretrack/caretrack/internal/platform/db"
	"github.com/caretrack/caretrack/pkg/apperr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type clientRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &clientRepoPG{pool: pool}
}

func (r *clientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const clientCols = `id, facility_id, art_number, name, age, address, contact,
	last_drug_pickup, last_vl_collection, next_pharmacy_due, next_vl_due,
	status, status_details, status_date, latitude, longitude,
	created_at, updated_at`

func (r *clientRepoPG) scan(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.FacilityID, &c.ARTNumber, &c.Name, &c.Age,
		&c.Address, &c.Contact,
		&c.LastDrugPickup, &c.LastVLCollection,
		&c.NextPharmacyDue, &c.NextViralLoadDue,
		&c.Status, &c.StatusDetails, &c.StatusDate,
		&c.Latitude, &c.Longitude,
		&c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *clientRepoPG) Create(ctx context.Context, c *Client) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client (id, facility_id, art_number, name, age, address, contact,
			last_drug_pickup, last_vl_collection, next_pharmacy_due, next_vl_due,
			status, status_details, status_date, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		c.ID, c.FacilityID, c.ARTNumber, c.Name, c.Age, c.Address, c.Contact,
		c.LastDrugPickup, c.LastVLCollection, c.NextPharmacyDue, c.NextViralLoadDue,
		c.Status, c.StatusDetails, c.StatusDate, c.Latitude, c.Longitude)
	return apperr.Storage("insert client", err)
}

func (r *clientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, err := r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+clientCols+` FROM client WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("client", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("select client", err)
	}
	return c, nil
}

func (r *clientRepoPG) Update(ctx context.Context, c *Client) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE client SET art_number=$2, name=$3, age=$4, address=$5, contact=$6,
			last_drug_pickup=$7, last_vl_collection=$8,
			next_pharmacy_due=$9, next_vl_due=$10,
			latitude=$11, longitude=$12, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.ARTNumber, c.Name, c.Age, c.Address, c.Contact,
		c.LastDrugPickup, c.LastVLCollection,
		c.NextPharmacyDue, c.NextViralLoadDue,
		c.Latitude, c.Longitude)
	if err != nil {
		return apperr.Storage("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client", c.ID.String())
	}
	return nil
}

func (r *clientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		conn := r.conn(ctx)
		if _, err := conn.Exec(ctx, `DELETE FROM outreach_record WHERE client_id = $1`, id); err != nil {
			return apperr.Storage("delete client outreach", err)
		}
		tag, err := conn.Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
		if err != nil {
			return apperr.Storage("delete client", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("client", id.String())
		}
		return nil
	})
}

func (r *clientRepoPG) ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Client, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM client WHERE facility_id = $1`, facilityID).Scan(&total); err != nil {
		return nil, 0, apperr.Storage("count clients", err)
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+clientCols+` FROM client
		WHERE facility_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`, facilityID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("select clients", err)
	}
	defer rows.Close()
	var items []*Client
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, apperr.Storage("scan client", err)
		}
		items = append(items, c)
	}
	return items, total, nil
}

func (r *clientRepoPG) Snapshot(ctx context.Context, facilityID uuid.UUID) ([]*Client, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+clientCols+` FROM client
		WHERE facility_id = $1 ORDER BY created_at, id`, facilityID)
	if err != nil {
		return nil, apperr.Storage("select client snapshot", err)
	}
	defer rows.Close()
	var items []*Client
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, apperr.Storage("scan client", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *clientRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, details *string, statusDate time.Time) (*Client, error) {
	c, err := r.scan(r.conn(ctx).QueryRow(ctx, `
		UPDATE client SET status=$2, status_details=$3, status_date=$4, updated_at=NOW()
		WHERE id = $1
		RETURNING `+clientCols, id, status, details, statusDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("client", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("update client status", err)
	}
	return c, nil
}

func (r *clientRepoPG) AppendOutreach(ctx context.Context, rec *OutreachRecord) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO outreach_record (id, client_id, intervention, finding, tracker, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rec.ID, rec.ClientID, rec.Intervention, rec.Finding, rec.Tracker, rec.RecordedAt)
	return apperr.Storage("insert outreach record", err)
}

// ListOutreach orders by the insertion sequence, which is exact append
// order even when two records share a recorded_at tick.
func (r *clientRepoPG) ListOutreach(ctx context.Context, clientID uuid.UUID) ([]*OutreachRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, client_id, intervention, finding, tracker, recorded_at
		FROM outreach_record WHERE client_id = $1 ORDER BY seq`, clientID)
	if err != nil {
		return nil, apperr.Storage("select outreach records", err)
	}
	defer rows.Close()
	var items []*OutreachRecord
	for rows.Next() {
		var rec OutreachRecord
		if err := rows.Scan(&rec.ID, &rec.ClientID, &rec.Intervention,
			&rec.Finding, &rec.Tracker, &rec.RecordedAt); err != nil {
			return nil, apperr.Storage("scan outreach record", err)
		}
		items = append(items, &rec)
	}
	return items, nil
}
