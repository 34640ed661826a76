package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfigYAML(dir string, maxRoutes int) string {
	cfg := fmt.Sprintf(`
google_project_id: test-project
route_name_prefix: "r-"
log_file: %s
request_interval: 0s
csv_format:
  segment_name_column: name
  combined_coordinates:
    origin_coord_column: origin
    destination_coord_column: destination
`, filepath.Join(dir, "run.log"))
	if maxRoutes > 0 {
		cfg += fmt.Sprintf("max_routes_to_create: %d\n", maxRoutes)
	}
	return cfg
}

func TestCreateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", testConfigYAML(dir, 0))
	csvPath := writeFile(t, dir, "input.csv",
		"name,origin,destination\n"+
			"Main Street,\"37.77,-122.41\",\"34.05,-118.24\"\n"+
			"bad row,not-a-coord,\"34.05,-118.24\"\n"+
			"State Street,\"40.76,-111.89\",\"40.77,-111.90\"\n")

	var created []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		created = append(created, r.URL.Query().Get("selectedRouteId"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outPath := filepath.Join(dir, "summary.json")
	err := New().Run(context.Background(), []string{
		"roadsync", "create", csvPath,
		"--config", cfgPath,
		"--token", "test-token",
		"--base-url", srv.URL,
		"--format", "json",
		"--output", outPath,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"r-main-street-2", "r-state-street-4"}, created)

	var summary map[string]int
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 3, summary["attempted"])
	assert.Equal(t, 2, summary["created"])
	assert.Equal(t, 1, summary["rejected"])

	log, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "outcome=created")
	assert.Contains(t, string(log), "reason=malformed_coordinate")
	assert.Contains(t, string(log), "finished created=2 rejected=1 failed=0 skipped=0")
}

func TestCreateWritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "metrics.prom")
	cfgYAML := testConfigYAML(dir, 0) + fmt.Sprintf("metrics_file: %s\n", metricsPath)
	cfgPath := writeFile(t, dir, "config.yaml", cfgYAML)
	csvPath := writeFile(t, dir, "input.csv",
		"name,origin,destination\nMain Street,\"37.77,-122.41\",\"34.05,-118.24\"\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := New().Run(context.Background(), []string{
		"roadsync", "create", csvPath,
		"--config", cfgPath,
		"--token", "test-token",
		"--base-url", srv.URL,
		"--output", filepath.Join(dir, "summary.yaml"),
	})
	require.NoError(t, err)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "roadsync_row_outcome_total")
	assert.Contains(t, string(metrics), "roadsync_route_create_duration_seconds")
}

func TestCreateCapOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", testConfigYAML(dir, 0))

	var rows strings.Builder
	rows.WriteString("name,origin,destination\n")
	for i := 0; i < 5; i++ {
		rows.WriteString(fmt.Sprintf("seg %d,\"37.77,-122.41\",\"34.05,-118.24\"\n", i))
	}
	csvPath := writeFile(t, dir, "input.csv", rows.String())

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := New().Run(context.Background(), []string{
		"roadsync", "create", csvPath,
		"--config", cfgPath,
		"--token", "test-token",
		"--base-url", srv.URL,
		"--max-routes", "2",
		"--output", filepath.Join(dir, "summary.yaml"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	log, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "finished created=2 rejected=0 failed=0 skipped=3")
}

func TestCreateDryRun(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", testConfigYAML(dir, 0))
	csvPath := writeFile(t, dir, "input.csv",
		"name,origin,destination\nMain Street,\"37.77,-122.41\",\"34.05,-118.24\"\n")

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("dry run must not contact the API")
	}))
	defer srv.Close()

	err := New().Run(context.Background(), []string{
		"roadsync", "create", csvPath,
		"--config", cfgPath,
		"--base-url", srv.URL,
		"--dry-run",
		"--output", filepath.Join(dir, "summary.yaml"),
	})
	require.NoError(t, err)

	log, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "reason=dry_run")
}

func TestCreateArgumentErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", testConfigYAML(dir, 0))
	csvPath := writeFile(t, dir, "input.csv", "name,origin,destination\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no csv argument", []string{"roadsync", "create", "--config", cfgPath}},
		{"missing config", []string{"roadsync", "create", csvPath, "--config", filepath.Join(dir, "nope.yaml")}},
		{"missing input", []string{"roadsync", "create", filepath.Join(dir, "nope.csv"), "--config", cfgPath}},
		{"bad format", []string{"roadsync", "create", csvPath, "--config", cfgPath, "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Run(context.Background(), tt.args)
			assert.Error(t, err)
		})
	}
}

func TestCreateFailedRowsStillExitZero(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", testConfigYAML(dir, 0))
	csvPath := writeFile(t, dir, "input.csv",
		"name,origin,destination\nMain Street,\"37.77,-122.41\",\"34.05,-118.24\"\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New().Run(context.Background(), []string{
		"roadsync", "create", csvPath,
		"--config", cfgPath,
		"--token", "test-token",
		"--base-url", srv.URL,
		"--output", filepath.Join(dir, "summary.yaml"),
	})
	require.NoError(t, err, "per-row failures complete the scan with exit 0")

	log, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "reason=auth_failure")
}
