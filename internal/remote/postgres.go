package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/showcase-api/internal/database"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNotFound        = errors.New("record not found")
	ErrMalformed       = errors.New("malformed record")
)

// Query narrows a List call. Zero value lists everything in insertion order.
type Query struct {
	// Field and Value form a single equality filter on a record field.
	Field string
	Value string
	// OrderBy names a timestamp-like field; records missing it sort last.
	OrderBy string
	Desc    bool
	Limit   int
}

// Backend stores each resource in its own table as JSONB documents.
type Backend struct {
	db *database.DB
}

func New(db *database.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.Pool.Ping(ctx)
}

func (b *Backend) List(ctx context.Context, resource string, q Query) ([]models.Record, error) {
	table, err := tableName(resource)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := make([]any, 0, 4)

	sb.WriteString("SELECT id, data FROM ")
	sb.WriteString(table)

	if q.Field != "" {
		args = append(args, q.Field, q.Value)
		sb.WriteString(" WHERE data->>$1::text = $2")
	}

	if q.OrderBy != "" {
		args = append(args, q.OrderBy)
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY data->>$%d::text %s NULLS LAST, seq", len(args), dir)
	} else {
		sb.WriteString(" ORDER BY seq")
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := b.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		rec, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert stores one record. A caller-supplied id is kept, otherwise the
// database assigns one. The returned record carries the id.
func (b *Backend) Insert(ctx context.Context, resource string, rec models.Record) (models.Record, error) {
	table, err := tableName(resource)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	var id string
	err = b.db.Pool.QueryRow(ctx, `
		INSERT INTO `+table+` (id, data)
		VALUES (COALESCE($1, gen_random_uuid()::text), $2)
		RETURNING id
	`, idArg(rec), data).Scan(&id)
	if err != nil {
		return nil, err
	}

	saved := rec.Clone()
	if saved == nil {
		saved = models.Record{}
	}
	if _, ok := saved[models.FieldID]; !ok {
		saved[models.FieldID] = id
	}
	return saved, nil
}

// InsertAll inserts records one by one. A failure leaves the earlier rows in
// place.
func (b *Backend) InsertAll(ctx context.Context, resource string, records []models.Record) error {
	for i, rec := range records {
		if _, err := b.Insert(ctx, resource, rec); err != nil {
			return fmt.Errorf("insert %d of %d: %w", i+1, len(records), err)
		}
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, resource, id string) error {
	table, err := tableName(resource)
	if err != nil {
		return err
	}

	tag, err := b.db.Pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (b *Backend) DeleteAll(ctx context.Context, resource string) error {
	table, err := tableName(resource)
	if err != nil {
		return err
	}

	_, err = b.db.Pool.Exec(ctx, `DELETE FROM `+table)
	return err
}

// Count returns the number of rows, optionally restricted to field = value.
func (b *Backend) Count(ctx context.Context, resource, field, value string) (int64, error) {
	table, err := tableName(resource)
	if err != nil {
		return 0, err
	}

	var count int64
	if field == "" {
		err = b.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count)
	} else {
		err = b.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE data->>$1::text = $2`, field, value).Scan(&count)
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func tableName(resource string) (string, error) {
	if !models.IsResource(resource) {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return pgx.Identifier{resource}.Sanitize(), nil
}

func idArg(rec models.Record) *string {
	id := rec.ID()
	if id == "" {
		return nil
	}
	return &id
}

func decode(id string, data []byte) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: id %s: %v", ErrMalformed, id, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: id %s: null document", ErrMalformed, id)
	}
	if _, ok := rec[models.FieldID]; !ok {
		rec[models.FieldID] = id
	}
	return rec, nil
}
