package facility

import (
	"context"
	"errors"

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

type facilityRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &facilityRepoPG{pool: pool}
}

func (r *facilityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const facCols = `id, name, district, contact, created_at, updated_at`

func (r *facilityRepoPG) scan(row pgx.Row) (*Facility, error) {
	var f Facility
	err := row.Scan(&f.ID, &f.Name, &f.District, &f.Contact, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *facilityRepoPG) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO facility (id, name, district, contact)
		VALUES ($1,$2,$3,$4)`,
		f.ID, f.Name, f.District, f.Contact)
	return apperr.Storage("insert facility", err)
}

func (r *facilityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	f, err := r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+facCols+` FROM facility WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("facility", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("select facility", err)
	}
	return f, nil
}

func (r *facilityRepoPG) List(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM facility`).Scan(&total); err != nil {
		return nil, 0, apperr.Storage("count facilities", err)
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+facCols+` FROM facility ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("select facilities", err)
	}
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		f, err := r.scan(rows)
		if err != nil {
			return nil, 0, apperr.Storage("scan facility", err)
		}
		items = append(items, f)
	}
	return items, total, nil
}

func (r *facilityRepoPG) Update(ctx context.Context, f *Facility) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE facility SET name=$2, district=$3, contact=$4, updated_at=NOW()
		WHERE id = $1`,
		f.ID, f.Name, f.District, f.Contact)
	if err != nil {
		return apperr.Storage("update facility", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("facility", f.ID.String())
	}
	return nil
}

func (r *facilityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		conn := r.conn(ctx)
		if _, err := conn.Exec(ctx, `
			DELETE FROM outreach_record
			WHERE client_id IN (SELECT id FROM client WHERE facility_id = $1)`, id); err != nil {
			return apperr.Storage("delete facility outreach", err)
		}
		if _, err := conn.Exec(ctx, `DELETE FROM client WHERE facility_id = $1`, id); err != nil {
			return apperr.Storage("delete facility clients", err)
		}
		tag, err := conn.Exec(ctx, `DELETE FROM facility WHERE id = $1`, id)
		if err != nil {
			return apperr.Storage("delete facility", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("facility", id.String())
		}
		return nil
	})
}
