package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	domainerrors "fleetroute/internal/domain/errors"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const laStopsCSV = `vehicle_id,location
v1,"{'lat': 34.0522, 'long': -118.2437}"
v2,"{'lat': 34.0622, 'long': -118.2537}"
v3,"{'lat': 34.0722, 'long': -118.2637}"
v4,"{'lat': 34.0822, 'long': -118.2737}"
v5,"{'lat': 34.0922, 'long': -118.2837}"
v6,"{'lat': 34.1022, 'long': -118.2937}"
v7,"{'lat': 34.0822, 'long': -118.2487}"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func runRouteCtl(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := writeFile(t, "config.yaml", "env:\n  log:\n    level: debug\nrouting:\n  metric: planar\n")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestPlan_JSON(t *testing.T) {
	input := writeFile(t, "stops.csv", laStopsCSV)

	stdout, stderr, err := runRouteCtl(t, "plan", "--input", input, "--vehicles", "2")
	require.NoError(t, err, stderr)

	var out planOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), stdout)

	require.Len(t, out.Routes, 2)
	require.Len(t, out.Vehicles, 2)
	visited := 0
	for _, route := range out.Routes {
		require.NotEmpty(t, route)
		assert.Equal(t, route[0], route[len(route)-1])
		visited += len(route) - 1
	}
	assert.Equal(t, 7, visited)
	assert.Contains(t, stderr, "Loaded stops")
	assert.Contains(t, stderr, "Plan complete")
}

func TestPlan_DefaultVehicles(t *testing.T) {
	input := writeFile(t, "stops.csv", laStopsCSV)

	stdout, stderr, err := runRouteCtl(t, "plan", "--input", input)
	require.NoError(t, err, stderr)

	var out planOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Len(t, out.Routes, 5)
}

func TestPlan_GeoJSON(t *testing.T) {
	input := writeFile(t, "stops.csv", laStopsCSV)

	stdout, stderr, err := runRouteCtl(t, "plan", "--input", input, "--vehicles", "1", "--format", "geojson", "--metric", "haversine")
	require.NoError(t, err, stderr)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(stdout))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1+7)
}

func TestPlan_SkipIncomplete(t *testing.T) {
	input := writeFile(t, "stops.csv", "lat,long\n1,1\n,2\n3,3\n")

	_, _, err := runRouteCtl(t, "plan", "--input", input, "--vehicles", "1")
	require.Error(t, err)
	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, domainerrors.CodeInvalidLocation, validationErr.ErrorCode())

	stdout, stderr, err := runRouteCtl(t, "plan", "--input", input, "--vehicles", "1", "--skip-incomplete")
	require.NoError(t, err, stderr)

	var out planOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, [][2]float64{{1, 1}, {3, 3}, {1, 1}}, out.Routes["0"])
}

func TestPlan_Errors(t *testing.T) {
	input := writeFile(t, "stops.csv", laStopsCSV)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input flag", args: []string{"plan"}},
		{name: "unknown format", args: []string{"plan", "--input", input, "--format", "xml"}},
		{name: "unknown metric", args: []string{"plan", "--input", input, "--metric", "manhattan"}},
		{name: "zero vehicles", args: []string{"plan", "--input", input, "--vehicles", "0"}},
		{name: "input not found", args: []string{"plan", "--input", input + ".missing"}},
		{name: "empty input", args: []string{"plan", "--input", writeFile(t, "empty.csv", "lat,long\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runRouteCtl(t, tt.args...)

			assert.Error(t, err)
			assert.Empty(t, stdout)
		})
	}
}

func TestRootOptions_LoadConfig_MissingFile(t *testing.T) {
	opts := &rootOptions{configPath: filepath.Join(t.TempDir(), "missing.yaml")}

	_, err := opts.loadConfig()

	assert.Error(t, err)
}
