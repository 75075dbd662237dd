//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestFocuswatchWithMySQL tests the focuswatch CLI with a MySQL history backend.
func TestFocuswatchWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "focuswatch",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/focuswatch?parseTime=true", host, port.Port())
	runHistoryRoundTrip(t, "mysql", connStr)
}

// TestFocuswatchWithPostgres tests the focuswatch CLI with a PostgreSQL history backend.
func TestFocuswatchWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryRoundTrip(t, "postgresql", connStr)
}

// runHistoryRoundTrip exercises the analyze and history commands against a live backend.
func runHistoryRoundTrip(t *testing.T, backend, connStr string) {
	// Set environment variables
	_ = os.Setenv("FOCUSWATCH_HISTORY_BACKEND", backend)
	_ = os.Setenv("FOCUSWATCH_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FOCUSWATCH_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("FOCUSWATCH_HISTORY_DB_CONNECT") }()

	// Run focuswatch history clear
	err := runFocuswatchCommand(t, "history", "clear")
	require.NoError(t, err)

	// Record an analyze run for a flat log
	logPath := writeWatchLog(t, t.TempDir(), "stable.log", convergedSamples(25))
	err = runFocuswatchCommand(t, "analyze", logPath)
	require.NoError(t, err)

	// Run focuswatch history status
	err = runFocuswatchCommand(t, "history", "status")
	require.NoError(t, err)

	// Run focuswatch history runs
	err = runFocuswatchCommand(t, "history", "runs", "--limit", "5")
	require.NoError(t, err)
}

func runFocuswatchCommand(t *testing.T, args ...string) error {
	focuswatchPath := getFocuswatchBinary()
	cmd := exec.Command(focuswatchPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
