//go:build integration

package remote

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/showcase-api/internal/database"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL testcontainer and returns a migrated DB.
func setupPostgres(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "showcase_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/showcase_test?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	db := &database.DB{Pool: pool}
	require.NoError(t, db.Migrate(ctx))

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return db
}

func TestIntegration_ReplaceAllRoundTrip(t *testing.T) {
	backend := New(setupPostgres(t))
	ctx := context.Background()

	records := []models.Record{
		{"name": "Pump", "price": float64(120)},
		{"id": "valve-1", "name": "Valve", "price": float64(35)},
	}

	require.NoError(t, backend.DeleteAll(ctx, models.ResourceProducts))
	require.NoError(t, backend.InsertAll(ctx, models.ResourceProducts, records))

	got, err := backend.List(ctx, models.ResourceProducts, Query{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Pump", got[0]["name"])
	assert.NotEmpty(t, got[0].ID())
	assert.Equal(t, "valve-1", got[1].ID())

	count, err := backend.Count(ctx, models.ResourceProducts, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, backend.Delete(ctx, models.ResourceProducts, "valve-1"))
	assert.ErrorIs(t, backend.Delete(ctx, models.ResourceProducts, "valve-1"), ErrNotFound)
}

func TestIntegration_FilterAndOrder(t *testing.T) {
	backend := New(setupPostgres(t))
	ctx := context.Background()

	for _, rec := range []models.Record{
		{"email": "a@b.com", "status": "new", "created_at": "2026-01-01T10:00:00Z"},
		{"email": "c@d.com", "status": "read", "created_at": "2026-01-02T10:00:00Z"},
		{"email": "e@f.com", "status": "new", "created_at": "2026-01-03T10:00:00Z"},
	} {
		_, err := backend.Insert(ctx, models.ResourceInquiries, rec)
		require.NoError(t, err)
	}

	got, err := backend.List(ctx, models.ResourceInquiries, Query{
		Field:   "status",
		Value:   "new",
		OrderBy: "created_at",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e@f.com", got[0]["email"])
	assert.Equal(t, "a@b.com", got[1]["email"])

	count, err := backend.Count(ctx, models.ResourceInquiries, "status", "new")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
