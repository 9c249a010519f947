//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSatscoutWithMySQL tests the satscout CLI with a MySQL history backend.
func TestSatscoutWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "satscout",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/satscout?parseTime=true", host, port.Port())
	runHistoryScenario(t, "mysql", connStr)
}

// TestSatscoutWithPostgres tests the satscout CLI with a PostgreSQL history backend.
func TestSatscoutWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runHistoryScenario(t, "postgresql", connStr)
}

// runHistoryScenario migrates, records lookups, inspects and clears the history store.
func runHistoryScenario(t *testing.T, backend, connStr string) {
	t.Helper()
	api := newFakeAPI(t)
	env := []string{
		"SATSCOUT_HISTORY_BACKEND=" + backend,
		"SATSCOUT_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runSatscout(t, api, env, "", "history", "clear")
	require.NoError(t, err)

	res, err := runSatscout(t, api, env, "", "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Successfully migrated")

	for _, dbn := range []string{"01M292", "08X282", "99X999"} {
		_, err = runSatscout(t, api, env, "", "score", dbn)
		require.NoError(t, err)
	}

	res, err = runSatscout(t, api, env, "", "history", "status")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, backend)
	assert.Contains(t, res.stdout, "Total Lookups: 3")
	assert.Contains(t, res.stdout, "Failed Lookups: 1")

	_, err = runSatscout(t, api, env, "", "history", "clear")
	require.NoError(t, err)
}
