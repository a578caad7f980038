package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations",
	}

	store, err := NewPostgresStore(creds)
	require.NoError(t, err)

	err = store.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestPostgresSetGet(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := store.Set(ctx, "shopping-cart-user1", `{"items":[]}`)
	require.NoError(t, err)

	value, err := store.Get(ctx, "shopping-cart-user1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, value)
}

func TestPostgresSet_Overwrites(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wishlist-user1", `[]`))
	require.NoError(t, store.Set(ctx, "wishlist-user1", `[{"id":"chair-9"}]`))

	value, err := store.Get(ctx, "wishlist-user1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"chair-9"}]`, value)
}

func TestPostgresGet_NotFound(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "shopping-cart-nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRemove(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "shopping-cart-guest", `{"items":[]}`))
	require.NoError(t, store.Remove(ctx, "shopping-cart-guest"))

	_, err := store.Get(ctx, "shopping-cart-guest")
	assert.ErrorIs(t, err, ErrNotFound)

	// removing again is not an error
	assert.NoError(t, store.Remove(ctx, "shopping-cart-guest"))
}
