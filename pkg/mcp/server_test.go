package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/goleak"

	"github.com/sunfmin/mcp-go-fixtures/pkg/config"
	"github.com/sunfmin/mcp-go-fixtures/pkg/fixtures"
	"github.com/sunfmin/mcp-go-fixtures/pkg/types"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T, mutate func(*config.Config)) *FixtureServer {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Files.Root = t.TempDir()
	cfg.Users = []config.UserSeed{{ID: 1, Name: "Ada", Email: "ada@example.com"}}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewFixtureServer("test-version", cfg)
	if err != nil {
		t.Fatalf("NewFixtureServer failed: %v", err)
	}
	return s
}

func call(t *testing.T, h handler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	return result
}

func getTextContent(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if tc, ok := mcp.AsTextContent(result.Content[0]); ok {
		return tc.Text
	}
	return ""
}

// decode calls h and unmarshals a successful JSON result into out.
func decode(t *testing.T, h handler, args map[string]interface{}, out interface{}) {
	t.Helper()
	result := call(t, h, args)
	text := getTextContent(result)
	if result.IsError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("failed to parse response %q: %v", text, err)
	}
}

// expectError calls h and checks the result is a tool error mentioning want.
func expectError(t *testing.T, h handler, args map[string]interface{}, want string) {
	t.Helper()
	result := call(t, h, args)
	text := getTextContent(result)
	if !result.IsError {
		t.Fatalf("expected error result, got %s", text)
	}
	if !strings.HasPrefix(text, "Error: ") || !strings.Contains(text, want) {
		t.Errorf("error text %q does not mention %q", text, want)
	}
}

func assertTextEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Errorf("text mismatch:\n%s", diff)
}

func TestPingCommand(t *testing.T) {
	server := newTestServer(t, nil)

	text := getTextContent(call(t, server.Ping, nil))
	if text != "pong - MCP Go Fixtures is connected!" {
		t.Errorf("Unexpected ping response: %s", text)
	}
}

func TestStatusCommand(t *testing.T) {
	server := newTestServer(t, func(c *config.Config) { c.Name = "Status Test" })

	var status types.StatusResponse
	decode(t, server.Status, nil, &status)

	if status.Server.Name != "Status Test" {
		t.Errorf("Unexpected server name: %s", status.Server.Name)
	}
	if status.Server.Version != "test-version" {
		t.Errorf("Unexpected server version: %s", status.Server.Version)
	}
	if len(status.Server.InstanceID) != 36 {
		t.Errorf("Instance ID %q is not a UUID", status.Server.InstanceID)
	}
	if status.Users != 1 || status.Names != 1 {
		t.Errorf("Seeded users not counted: users=%d names=%d", status.Users, status.Names)
	}
	if len(status.Fixtures) != 2 {
		t.Errorf("Expected 2 fixtures, got %v", status.Fixtures)
	}
}

func TestNewFixtureServerRejectsBadSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Users = []config.UserSeed{{ID: 9, Name: "Bad", Email: "not-an-email"}}
	if _, err := NewFixtureServer("v", cfg); err == nil {
		t.Fatal("expected seeding error for malformed email")
	}
}

func TestArithmeticTools(t *testing.T) {
	server := newTestServer(t, nil)

	var agg types.AggregateResponse
	decode(t, server.Average, map[string]interface{}{"numbers": []interface{}{1.0, 2.0, 6.0}}, &agg)
	if agg.Result != 3 || agg.Count != 3 {
		t.Errorf("average = %+v; want result 3 over 3 numbers", agg)
	}
	expectError(t, server.Average, map[string]interface{}{"numbers": []interface{}{}}, "empty input")
	expectError(t, server.Average, map[string]interface{}{"numbers": []interface{}{"x"}}, "must be a number")
	expectError(t, server.Average, nil, "missing required argument")

	decode(t, server.Max, map[string]interface{}{"numbers": []interface{}{4.0, -1.0, 9.5}}, &agg)
	if agg.Result != 9.5 || agg.Context.Operation != "max" {
		t.Errorf("max = %+v; want 9.5", agg)
	}
	decode(t, server.Max, map[string]interface{}{"numbers": []interface{}{4.0, -1.0, 9.5}, "min": true}, &agg)
	if agg.Result != -1 || agg.Context.Operation != "min" {
		t.Errorf("min = %+v; want -1", agg)
	}
	expectError(t, server.Max, map[string]interface{}{"numbers": []interface{}{}}, "empty input")
	expectError(t, server.Max, map[string]interface{}{"numbers": []interface{}{1.0}, "min": "true"}, "must be a boolean")

	var stats types.StatisticsResponse
	decode(t, server.Statistics, map[string]interface{}{"numbers": []interface{}{3.0, 1.0, 2.0, 10.0}}, &stats)
	if stats.Stats.Median != 2.5 || stats.Stats.Mean != 4 {
		t.Errorf("statistics = %+v; want median 2.5 mean 4", stats.Stats)
	}

	var clamp types.ClampResponse
	decode(t, server.Clamp, map[string]interface{}{"value": 12.0, "min": 0.0, "max": 10.0}, &clamp)
	if clamp.Result != 10 {
		t.Errorf("clamp = %v; want 10", clamp.Result)
	}
	expectError(t, server.Clamp, map[string]interface{}{"value": 1.0, "min": 5.0, "max": 0.0}, "invalid bounds")
}

func TestDivideTool(t *testing.T) {
	server := newTestServer(t, nil)

	var resp types.DivideResponse
	decode(t, server.Divide, map[string]interface{}{"a": 17.0, "b": 5.0}, &resp)
	if resp.Quotient != 3 {
		t.Errorf("17 / 5 = %d; want 3", resp.Quotient)
	}

	expectError(t, server.Divide, map[string]interface{}{"a": 1.0, "b": 0.0}, "division by zero")
	expectError(t, server.Divide, map[string]interface{}{"a": -2147483648.0, "b": -1.0}, "integer overflow")
	expectError(t, server.Divide, map[string]interface{}{"a": 1.5, "b": 1.0}, "must be an integer")
	expectError(t, server.Divide, map[string]interface{}{"a": 3e10, "b": 1.0}, "must be in")
	expectError(t, server.Divide, map[string]interface{}{"a": "7", "b": 1.0}, "must be a number")
}

func TestParseNumberTool(t *testing.T) {
	server := newTestServer(t, func(c *config.Config) {
		c.Parse.Min = 0
		c.Parse.Max = 100
	})

	var resp types.ParseResponse
	decode(t, server.ParseNumber, map[string]interface{}{"input": " 42 "}, &resp)
	if resp.Value != 42 || resp.Min != 0 || resp.Max != 100 {
		t.Errorf("parse = %+v; want 42 within config bounds", resp)
	}

	decode(t, server.ParseNumber, map[string]interface{}{"input": "-5", "min": -10.0}, &resp)
	if resp.Value != -5 {
		t.Errorf("parse with explicit min = %d; want -5", resp.Value)
	}

	expectError(t, server.ParseNumber, map[string]interface{}{"input": "101"}, "out of range")
	expectError(t, server.ParseNumber, map[string]interface{}{"input": "forty"}, "invalid syntax")
	expectError(t, server.ParseNumber, map[string]interface{}{"input": ""}, "empty input")
}

func TestReadFileTool(t *testing.T) {
	server := newTestServer(t, func(c *config.Config) { c.Files.MaxBytes = 32 })

	root := server.cfg.Files.Root
	if err := os.WriteFile(filepath.Join(root, "note.txt"), []byte("remember\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "big.txt"), []byte(strings.Repeat("z", 64)), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	var resp types.FileResponse
	decode(t, server.ReadFile, map[string]interface{}{"path": "note.txt"}, &resp)
	if resp.Content != "remember\n" || resp.Size != 9 {
		t.Errorf("read_file = %+v", resp)
	}

	expectError(t, server.ReadFile, map[string]interface{}{"path": "missing.txt"}, "no such file")
	expectError(t, server.ReadFile, map[string]interface{}{"path": "../etc/passwd"}, "path escapes root")
	expectError(t, server.ReadFile, map[string]interface{}{"path": "big.txt"}, "file too large")
}

func TestBufferAtTool(t *testing.T) {
	server := newTestServer(t, nil)

	var resp types.BufferResponse
	decode(t, server.BufferAt, map[string]interface{}{"index": 4.0}, &resp)
	if resp.Value != 5 || resp.Length != 5 {
		t.Errorf("buffer_at(4) = %+v; want value 5", resp)
	}

	expectError(t, server.BufferAt, map[string]interface{}{"index": 5.0}, "index out of range")
	expectError(t, server.BufferAt, map[string]interface{}{"index": -1.0}, "index out of range")
}

func TestUserTools(t *testing.T) {
	server := newTestServer(t, nil)

	var user types.UserResponse
	decode(t, server.GetUser, map[string]interface{}{"id": 1.0}, &user)
	if user.User.Name != "Ada" || user.Source != "database" {
		t.Errorf("seeded user = %+v", user)
	}

	expectError(t, server.GetUser, map[string]interface{}{"id": 2.0}, "user not found")

	decode(t, server.AddUser, map[string]interface{}{"id": 2.0, "name": "Grace"}, &user)
	if user.Source != "directory" {
		t.Errorf("name-only user stored in %s; want directory", user.Source)
	}
	decode(t, server.GetUser, map[string]interface{}{"id": 2.0}, &user)
	if user.User.Name != "Grace" || user.Source != "directory" || user.User.Email != "" {
		t.Errorf("name-only lookup = %+v", user)
	}

	decode(t, server.AddUser, map[string]interface{}{"id": 3.0, "name": "Linus", "email": "linus@kernel.org"}, &user)
	if user.Source != "database" {
		t.Errorf("full user stored in %s; want database", user.Source)
	}

	expectError(t, server.AddUser, map[string]interface{}{"id": 4.0, "name": "Bad", "email": "bad"}, "invalid user")
	expectError(t, server.AddUser, map[string]interface{}{"id": -4.0, "name": "Neg"}, "must be in")

	expectError(t, server.AddUser, map[string]interface{}{"id": 5.0, "name": ""}, "empty name")
	expectError(t, server.AddUser, map[string]interface{}{"id": 5.0, "name": "   "}, "empty name")
	expectError(t, server.GetUser, map[string]interface{}{"id": 5.0}, "user not found")

	var list types.UserListResponse
	decode(t, server.ListUsers, nil, &list)
	if len(list.Users) != 2 || list.Users[0].ID != 1 || list.Users[1].ID != 3 {
		t.Errorf("list_users = %+v; want ids [1 3]", list.Users)
	}
}

func TestAddUserLastWriteWins(t *testing.T) {
	server := newTestServer(t, nil)

	// Seeded id 1 is a full record; a name-only write replaces it.
	var user types.UserResponse
	decode(t, server.AddUser, map[string]interface{}{"id": 1.0, "name": "Bob"}, &user)
	decode(t, server.GetUser, map[string]interface{}{"id": 1.0}, &user)
	if user.User.Name != "Bob" || user.User.Email != "" || user.Source != "directory" {
		t.Errorf("get_user after name-only overwrite = %+v; want Bob from directory", user)
	}

	var list types.UserListResponse
	decode(t, server.ListUsers, nil, &list)
	if len(list.Users) != 0 {
		t.Errorf("list_users still holds the replaced record: %+v", list.Users)
	}

	// A full write afterwards wins again.
	decode(t, server.AddUser, map[string]interface{}{"id": 1.0, "name": "Carol", "email": "carol@example.com"}, &user)
	decode(t, server.GetUser, map[string]interface{}{"id": 1.0}, &user)
	if user.User.Name != "Carol" || user.Source != "database" {
		t.Errorf("get_user after full overwrite = %+v; want Carol from database", user)
	}
}

func TestCounterTools(t *testing.T) {
	server := newTestServer(t, func(c *config.Config) {
		c.Stress.MaxWorkers = 8
		c.Stress.MaxPerWorker = 1000
	})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var resp types.CounterResponse
	decode(t, server.CounterIncrement, nil, &resp)
	if resp.Value != 1 || resp.Added != 1 {
		t.Errorf("first increment = %+v", resp)
	}
	decode(t, server.CounterIncrement, map[string]interface{}{"by": 9.0}, &resp)
	if resp.Value != 10 {
		t.Errorf("increment by 9 = %d; want 10", resp.Value)
	}

	decode(t, server.CounterStress, map[string]interface{}{"workers": 8.0, "per_worker": 1000.0}, &resp)
	if resp.Added != 8000 || resp.Value != 8010 {
		t.Errorf("counter_stress = %+v; want 8000 added, value 8010", resp)
	}

	decode(t, server.CounterValue, nil, &resp)
	if resp.Value != 8010 {
		t.Errorf("counter_value = %d; want 8010", resp.Value)
	}

	expectError(t, server.CounterStress, map[string]interface{}{"workers": 9.0, "per_worker": 1.0}, "must be in [1, 8]")
	expectError(t, server.CounterIncrement, map[string]interface{}{"by": 0.0}, "must be in")
}

func TestFixtureTools(t *testing.T) {
	server := newTestServer(t, nil)

	var list types.FixtureListResponse
	decode(t, server.ListFixtures, nil, &list)
	if strings.Join(list.Fixtures, ",") != "helpers.go,sample.go" {
		t.Errorf("list_fixtures = %v", list.Fixtures)
	}

	var fixture types.FixtureResponse
	decode(t, server.GetFixture, map[string]interface{}{"name": "sample.go"}, &fixture)
	want, err := fixtures.Source("sample.go")
	if err != nil {
		t.Fatalf("Source failed: %v", err)
	}
	assertTextEqual(t, want, fixture.Source)
	if len(fixture.Markers) != 6 {
		t.Errorf("sample.go markers = %d; want 6", len(fixture.Markers))
	}
	expectError(t, server.GetFixture, map[string]interface{}{"name": "nope.go"}, "unknown fixture")

	var markers types.MarkersResponse
	decode(t, server.FixtureMarkers, nil, &markers)
	if len(markers.Markers) != 16 {
		t.Errorf("all markers = %d; want 16", len(markers.Markers))
	}
	decode(t, server.FixtureMarkers, map[string]interface{}{"name": "helpers.go"}, &markers)
	if len(markers.Markers) != 10 {
		t.Errorf("helpers.go markers = %d; want 10", len(markers.Markers))
	}

	var diff types.DiffResponse
	decode(t, server.DiffFixtures, map[string]interface{}{"from": "helpers.go", "to": "sample.go"}, &diff)
	wantDiff, err := fixtures.Diff("helpers.go", "sample.go")
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	assertTextEqual(t, wantDiff, diff.Diff)
	if diff.Similarity <= 0 || diff.Similarity >= 1 {
		t.Errorf("similarity = %v; want strictly between 0 and 1", diff.Similarity)
	}
}
