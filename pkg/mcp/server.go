package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sunfmin/mcp-go-fixtures/pkg/buffer"
	"github.com/sunfmin/mcp-go-fixtures/pkg/config"
	"github.com/sunfmin/mcp-go-fixtures/pkg/counter"
	"github.com/sunfmin/mcp-go-fixtures/pkg/fileio"
	"github.com/sunfmin/mcp-go-fixtures/pkg/fixtures"
	"github.com/sunfmin/mcp-go-fixtures/pkg/logger"
	"github.com/sunfmin/mcp-go-fixtures/pkg/numeric"
	"github.com/sunfmin/mcp-go-fixtures/pkg/parse"
	"github.com/sunfmin/mcp-go-fixtures/pkg/types"
	"github.com/sunfmin/mcp-go-fixtures/pkg/users"
)

// FixtureServer encapsulates the MCP server with the checked helpers and
// the fixture catalog
type FixtureServer struct {
	server     *server.MCPServer
	cfg        *config.Config
	version    string
	instanceID string

	db        *users.Database
	directory *users.Directory
	counter   *counter.Counter
	files     fileio.Reader
}

// NewFixtureServer creates a new MCP server and seeds it from cfg
func NewFixtureServer(version string, cfg *config.Config) (*FixtureServer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &FixtureServer{
		server:     server.NewMCPServer(cfg.Name, version),
		cfg:        cfg,
		version:    version,
		instanceID: uuid.NewString(),
		db:         users.NewDatabase(),
		directory:  users.NewDirectory(),
		counter:    &counter.Counter{},
		files:      fileio.Reader{Root: cfg.Files.Root, MaxBytes: cfg.Files.MaxBytes},
	}

	for _, seed := range cfg.Users {
		u := users.User{ID: seed.ID, Name: seed.Name, Email: seed.Email}
		if err := s.db.Add(u); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		s.directory.Add(u.ID, u.Name)
	}

	s.registerTools()

	logger.Debug("Fixture server ready", "instance", s.instanceID, "users", s.db.Len())
	return s, nil
}

// Server returns the underlying MCP server
func (s *FixtureServer) Server() *server.MCPServer {
	return s.server
}

// registerTools registers every tool
func (s *FixtureServer) registerTools() {
	s.addPingTool()
	s.addStatusTool()

	// Arithmetic
	s.addAverageTool()
	s.addMaxTool()
	s.addDivideTool()
	s.addStatisticsTool()
	s.addClampTool()
	s.addParseNumberTool()

	// I/O
	s.addReadFileTool()
	s.addBufferAtTool()

	// Users
	s.addAddUserTool()
	s.addGetUserTool()
	s.addListUsersTool()

	// Counter
	s.addCounterIncrementTool()
	s.addCounterValueTool()
	s.addCounterStressTool()

	// Fixtures
	s.addListFixturesTool()
	s.addGetFixtureTool()
	s.addFixtureMarkersTool()
	s.addDiffFixturesTool()
}

func (s *FixtureServer) addPingTool() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Simple ping tool to test connection"),
	)

	s.server.AddTool(pingTool, s.Ping)
}

func (s *FixtureServer) addStatusTool() {
	statusTool := mcp.NewTool("status",
		mcp.WithDescription("Report server identity, user counts, counter value and served fixtures"),
	)

	s.server.AddTool(statusTool, s.Status)
}

func (s *FixtureServer) addAverageTool() {
	averageTool := mcp.NewTool("average",
		mcp.WithDescription("Arithmetic mean of a list of numbers; fails on an empty list"),
		mcp.WithArray("numbers",
			mcp.Required(),
			mcp.Description("Numbers to average"),
		),
	)

	s.server.AddTool(averageTool, s.Average)
}

func (s *FixtureServer) addMaxTool() {
	maxTool := mcp.NewTool("max",
		mcp.WithDescription("Largest (or smallest) value of a list of numbers; fails on an empty list"),
		mcp.WithArray("numbers",
			mcp.Required(),
			mcp.Description("Numbers to scan"),
		),
		mcp.WithBoolean("min",
			mcp.Description("Return the minimum instead of the maximum"),
		),
	)

	s.server.AddTool(maxTool, s.Max)
}

func (s *FixtureServer) addDivideTool() {
	divideTool := mcp.NewTool("divide",
		mcp.WithDescription("32-bit integer division; fails on a zero divisor or overflow"),
		mcp.WithNumber("a",
			mcp.Required(),
			mcp.Description("Dividend"),
		),
		mcp.WithNumber("b",
			mcp.Required(),
			mcp.Description("Divisor"),
		),
	)

	s.server.AddTool(divideTool, s.Divide)
}

func (s *FixtureServer) addStatisticsTool() {
	statisticsTool := mcp.NewTool("statistics",
		mcp.WithDescription("Count, mean, median, min and max of a list of numbers"),
		mcp.WithArray("numbers",
			mcp.Required(),
			mcp.Description("Numbers to summarize"),
		),
	)

	s.server.AddTool(statisticsTool, s.Statistics)
}

func (s *FixtureServer) addClampTool() {
	clampTool := mcp.NewTool("clamp",
		mcp.WithDescription("Clamp a number to an inclusive range"),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("Value to clamp")),
		mcp.WithNumber("min", mcp.Required(), mcp.Description("Lower bound")),
		mcp.WithNumber("max", mcp.Required(), mcp.Description("Upper bound")),
	)

	s.server.AddTool(clampTool, s.Clamp)
}

func (s *FixtureServer) addParseNumberTool() {
	parseTool := mcp.NewTool("parse_number",
		mcp.WithDescription("Parse a base-10 32-bit integer, optionally within bounds"),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("Text to parse"),
		),
		mcp.WithNumber("min",
			mcp.Description("Inclusive lower bound (default from config)"),
		),
		mcp.WithNumber("max",
			mcp.Description("Inclusive upper bound (default from config)"),
		),
	)

	s.server.AddTool(parseTool, s.ParseNumber)
}

func (s *FixtureServer) addReadFileTool() {
	readTool := mcp.NewTool("read_file",
		mcp.WithDescription("Read a text file below the configured root"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path relative to the files root"),
		),
	)

	s.server.AddTool(readTool, s.ReadFile)
}

func (s *FixtureServer) addBufferAtTool() {
	bufferTool := mcp.NewTool("buffer_at",
		mcp.WithDescription("Bounds-checked read from the sample buffer {1,2,3,4,5}"),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based index"),
		),
	)

	s.server.AddTool(bufferTool, s.BufferAt)
}

func (s *FixtureServer) addAddUserTool() {
	addUserTool := mcp.NewTool("add_user",
		mcp.WithDescription("Store a user; with an email the full record is kept, otherwise only the name"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("User ID")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("email", mcp.Description("Contact email")),
	)

	s.server.AddTool(addUserTool, s.AddUser)
}

func (s *FixtureServer) addGetUserTool() {
	getUserTool := mcp.NewTool("get_user",
		mcp.WithDescription("Look up a user by ID; reports not found explicitly"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("User ID")),
	)

	s.server.AddTool(getUserTool, s.GetUser)
}

func (s *FixtureServer) addListUsersTool() {
	listUsersTool := mcp.NewTool("list_users",
		mcp.WithDescription("List full user records ordered by ID"),
	)

	s.server.AddTool(listUsersTool, s.ListUsers)
}

func (s *FixtureServer) addCounterIncrementTool() {
	incrementTool := mcp.NewTool("counter_increment",
		mcp.WithDescription("Atomically increment the shared counter"),
		mcp.WithNumber("by",
			mcp.Description("Amount to add (default 1)"),
		),
	)

	s.server.AddTool(incrementTool, s.CounterIncrement)
}

func (s *FixtureServer) addCounterValueTool() {
	valueTool := mcp.NewTool("counter_value",
		mcp.WithDescription("Read the shared counter"),
	)

	s.server.AddTool(valueTool, s.CounterValue)
}

func (s *FixtureServer) addCounterStressTool() {
	stressTool := mcp.NewTool("counter_stress",
		mcp.WithDescription("Increment the shared counter from many goroutines at once"),
		mcp.WithNumber("workers", mcp.Required(), mcp.Description("Goroutines to start")),
		mcp.WithNumber("per_worker", mcp.Required(), mcp.Description("Increments per goroutine")),
	)

	s.server.AddTool(stressTool, s.CounterStress)
}

func (s *FixtureServer) addListFixturesTool() {
	listTool := mcp.NewTool("list_fixtures",
		mcp.WithDescription("List the seeded-bug fixture files"),
	)

	s.server.AddTool(listTool, s.ListFixtures)
}

func (s *FixtureServer) addGetFixtureTool() {
	getTool := mcp.NewTool("get_fixture",
		mcp.WithDescription("Return the source of a fixture and its annotated defects"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Fixture file name")),
	)

	s.server.AddTool(getTool, s.GetFixture)
}

func (s *FixtureServer) addFixtureMarkersTool() {
	markersTool := mcp.NewTool("fixture_markers",
		mcp.WithDescription("Expected findings for one fixture, or for all when name is omitted"),
		mcp.WithString("name", mcp.Description("Fixture file name")),
	)

	s.server.AddTool(markersTool, s.FixtureMarkers)
}

func (s *FixtureServer) addDiffFixturesTool() {
	diffTool := mcp.NewTool("diff_fixtures",
		mcp.WithDescription("Unified diff and similarity ratio between two fixtures"),
		mcp.WithString("from", mcp.Required(), mcp.Description("First fixture")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Second fixture")),
	)

	s.server.AddTool(diffTool, s.DiffFixtures)
}

// newErrorResult creates a tool result that represents an error
func newErrorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := mcp.NewToolResultText(fmt.Sprintf("Error: "+format, args...))
	result.IsError = true
	return result
}

func newToolResultJSON(data interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return newErrorResult("failed to serialize data: %v", err), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func newContext(operation, summary string) types.ToolContext {
	return types.ToolContext{
		Timestamp: time.Now(),
		Operation: operation,
		Summary:   summary,
	}
}

// Ping handles the ping command
func (s *FixtureServer) Ping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received ping request")
	return mcp.NewToolResultText("pong - MCP Go Fixtures is connected!"), nil
}

// Status handles the status command
func (s *FixtureServer) Status(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received status request")

	response := types.StatusResponse{
		Status:  "success",
		Context: newContext("status", fmt.Sprintf("%d users, counter at %d", s.db.Len(), s.counter.Value())),
		Server: types.ServerInfo{
			Name:       s.cfg.Name,
			Version:    s.version,
			InstanceID: s.instanceID,
		},
		Users:    s.db.Len(),
		Names:    s.directory.Len(),
		Counter:  s.counter.Value(),
		Fixtures: fixtures.List(),
	}

	return newToolResultJSON(response)
}

// Average handles the average command
func (s *FixtureServer) Average(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received average request")

	numbers, err := numberListArg(request.Params.Arguments, "numbers")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	avg, err := numeric.Average(numbers)
	if err != nil {
		logger.Warn("Average rejected", "error", err)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.AggregateResponse{
		Status:  "success",
		Context: newContext("average", fmt.Sprintf("mean of %d numbers", len(numbers))),
		Count:   len(numbers),
		Result:  avg,
	})
}

// Max handles the max command
func (s *FixtureServer) Max(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received max request")

	numbers, err := numberListArg(request.Params.Arguments, "numbers")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	wantMin, err := optionalBoolArg(request.Params.Arguments, "min")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	op := "max"
	pick := numeric.Max[float64]
	if wantMin {
		op = "min"
		pick = numeric.Min[float64]
	}

	result, err := pick(numbers)
	if err != nil {
		logger.Warn("Max rejected", "error", err)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.AggregateResponse{
		Status:  "success",
		Context: newContext(op, fmt.Sprintf("%s of %d numbers", op, len(numbers))),
		Count:   len(numbers),
		Result:  result,
	})
}

// Divide handles the divide command
func (s *FixtureServer) Divide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received divide request")

	a, err := integerArg(request.Params.Arguments, "a", math.MinInt32, math.MaxInt32)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	b, err := integerArg(request.Params.Arguments, "b", math.MinInt32, math.MaxInt32)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	q, err := numeric.Divide(int32(a), int32(b))
	if err != nil {
		logger.Warn("Divide rejected", "error", err)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.DivideResponse{
		Status:   "success",
		Context:  newContext("divide", fmt.Sprintf("%d / %d = %d", a, b, q)),
		Dividend: int32(a),
		Divisor:  int32(b),
		Quotient: q,
	})
}

// Statistics handles the statistics command
func (s *FixtureServer) Statistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received statistics request")

	numbers, err := numberListArg(request.Params.Arguments, "numbers")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	stats, err := numeric.Statistics(numbers)
	if err != nil {
		logger.Warn("Statistics rejected", "error", err)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.StatisticsResponse{
		Status:  "success",
		Context: newContext("statistics", fmt.Sprintf("mean %g, median %g", stats.Mean, stats.Median)),
		Stats:   stats,
	})
}

// Clamp handles the clamp command
func (s *FixtureServer) Clamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received clamp request")

	var vals [3]float64
	for i, name := range []string{"value", "min", "max"} {
		f, err := numberArg(request.Params.Arguments, name)
		if err != nil {
			return newErrorResult("%v", err), nil
		}
		vals[i] = f
	}

	result, err := numeric.Clamp(vals[0], vals[1], vals[2])
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.ClampResponse{
		Status:  "success",
		Context: newContext("clamp", fmt.Sprintf("%g clamped to %g", vals[0], result)),
		Value:   vals[0],
		Min:     vals[1],
		Max:     vals[2],
		Result:  result,
	})
}

// ParseNumber handles the parse_number command
func (s *FixtureServer) ParseNumber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received parse_number request")

	args := request.Params.Arguments
	input, err := stringArg(args, "input")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	lo, err := optionalIntegerArg(args, "min", math.MinInt32, math.MaxInt32, int64(s.cfg.Parse.Min))
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	hi, err := optionalIntegerArg(args, "max", math.MinInt32, math.MaxInt32, int64(s.cfg.Parse.Max))
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	n, err := parse.ParseInRange(input, int32(lo), int32(hi))
	if err != nil {
		logger.Warn("Parse rejected", "error", err)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.ParseResponse{
		Status:  "success",
		Context: newContext("parse_number", fmt.Sprintf("parsed %d", n)),
		Input:   input,
		Value:   n,
		Min:     int32(lo),
		Max:     int32(hi),
	})
}

// ReadFile handles the read_file command
func (s *FixtureServer) ReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received read_file request")

	path, err := stringArg(request.Params.Arguments, "path")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	content, err := s.files.Read(path)
	if err != nil {
		logger.Warn("Failed to read file", "error", err, "path", path)
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.FileResponse{
		Status:  "success",
		Context: newContext("read_file", fmt.Sprintf("read %d bytes", len(content))),
		Path:    path,
		Size:    len(content),
		Content: content,
	})
}

// BufferAt handles the buffer_at command
func (s *FixtureServer) BufferAt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received buffer_at request")

	index, err := integerArg(request.Params.Arguments, "index", math.MinInt32, math.MaxInt32)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	b, err := buffer.SampleAt(int(index))
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.BufferResponse{
		Status:  "success",
		Context: newContext("buffer_at", fmt.Sprintf("byte %d is %d", index, b)),
		Index:   int(index),
		Value:   b,
		Length:  5,
	})
}

// AddUser handles the add_user command
func (s *FixtureServer) AddUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received add_user request")

	args := request.Params.Arguments
	id, err := integerArg(args, "id", 0, 1<<53)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	email, err := optionalStringArg(args, "email")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	u := users.User{ID: uint64(id), Name: name, Email: email}
	if err := u.ValidateName(); err != nil {
		return newErrorResult("%v", err), nil
	}

	source := "directory"
	if email != "" {
		if err := s.db.Add(u); err != nil {
			return newErrorResult("%v", err), nil
		}
		source = "database"
	} else if s.db.Delete(u.ID) {
		// Last write wins: a name-only write replaces the full record.
		logger.Debug("Replaced full record with name-only entry", "id", u.ID)
	}
	s.directory.Add(u.ID, u.Name)

	logger.Info("User stored", "id", u.ID, "source", source)

	return newToolResultJSON(types.UserResponse{
		Status:  "success",
		Context: newContext("add_user", fmt.Sprintf("stored user %d", u.ID)),
		User:    u,
		Source:  source,
	})
}

// GetUser handles the get_user command
func (s *FixtureServer) GetUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received get_user request")

	id, err := integerArg(request.Params.Arguments, "id", 0, 1<<53)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	source := "database"
	u, err := s.db.Get(uint64(id))
	if errors.Is(err, users.ErrNotFound) {
		// Name-only entries live in the directory.
		var name string
		name, err = s.directory.Get(uint64(id))
		u = users.User{ID: uint64(id), Name: name}
		source = "directory"
	}
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.UserResponse{
		Status:  "success",
		Context: newContext("get_user", fmt.Sprintf("found user %d", u.ID)),
		User:    u,
		Source:  source,
	})
}

// ListUsers handles the list_users command
func (s *FixtureServer) ListUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received list_users request")

	list := s.db.List()
	return newToolResultJSON(types.UserListResponse{
		Status:  "success",
		Context: newContext("list_users", fmt.Sprintf("%d users", len(list))),
		Users:   list,
	})
}

// CounterIncrement handles the counter_increment command
func (s *FixtureServer) CounterIncrement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received counter_increment request")

	by, err := optionalIntegerArg(request.Params.Arguments, "by", 1, 1<<53, 1)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	value := s.counter.Add(uint64(by))
	return newToolResultJSON(types.CounterResponse{
		Status:  "success",
		Context: newContext("counter_increment", fmt.Sprintf("counter at %d", value)),
		Value:   value,
		Added:   uint64(by),
	})
}

// CounterValue handles the counter_value command
func (s *FixtureServer) CounterValue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received counter_value request")

	value := s.counter.Value()
	return newToolResultJSON(types.CounterResponse{
		Status:  "success",
		Context: newContext("counter_value", fmt.Sprintf("counter at %d", value)),
		Value:   value,
	})
}

// CounterStress handles the counter_stress command
func (s *FixtureServer) CounterStress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received counter_stress request")

	args := request.Params.Arguments
	workers, err := integerArg(args, "workers", 1, int64(s.cfg.Stress.MaxWorkers))
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	perWorker, err := integerArg(args, "per_worker", 0, int64(s.cfg.Stress.MaxPerWorker))
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	before := s.counter.Value()
	start := time.Now()
	if err := counter.IncrementParallel(ctx, s.counter, int(workers), int(perWorker)); err != nil {
		logger.Error("Counter stress interrupted", "error", err)
		return newErrorResult("counter stress interrupted: %v", err), nil
	}
	after := s.counter.Value()

	logger.Info("Counter stress finished", "workers", workers, "perWorker", perWorker, "elapsed", time.Since(start))

	return newToolResultJSON(types.CounterResponse{
		Status:  "success",
		Context: newContext("counter_stress", fmt.Sprintf("%d workers x %d increments", workers, perWorker)),
		Value:   after,
		Added:   after - before,
	})
}

// ListFixtures handles the list_fixtures command
func (s *FixtureServer) ListFixtures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received list_fixtures request")

	names := fixtures.List()
	return newToolResultJSON(types.FixtureListResponse{
		Status:   "success",
		Context:  newContext("list_fixtures", fmt.Sprintf("%d fixtures", len(names))),
		Fixtures: names,
	})
}

// GetFixture handles the get_fixture command
func (s *FixtureServer) GetFixture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received get_fixture request")

	name, err := stringArg(request.Params.Arguments, "name")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	src, err := fixtures.Source(name)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	markers, err := fixtures.Markers(name)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.FixtureResponse{
		Status:  "success",
		Context: newContext("get_fixture", fmt.Sprintf("%s with %d markers", name, len(markers))),
		Name:    name,
		Source:  src,
		Markers: markers,
	})
}

// FixtureMarkers handles the fixture_markers command
func (s *FixtureServer) FixtureMarkers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received fixture_markers request")

	name, err := optionalStringArg(request.Params.Arguments, "name")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	var markers []fixtures.Marker
	if name == "" {
		markers, err = fixtures.AllMarkers()
	} else {
		markers, err = fixtures.Markers(name)
	}
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.MarkersResponse{
		Status:  "success",
		Context: newContext("fixture_markers", fmt.Sprintf("%d markers", len(markers))),
		Markers: markers,
	})
}

// DiffFixtures handles the diff_fixtures command
func (s *FixtureServer) DiffFixtures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received diff_fixtures request")

	args := request.Params.Arguments
	from, err := stringArg(args, "from")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	to, err := stringArg(args, "to")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	diff, err := fixtures.Diff(from, to)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	ratio, err := fixtures.Similarity(from, to)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.DiffResponse{
		Status:     "success",
		Context:    newContext("diff_fixtures", fmt.Sprintf("%.0f%% similar", ratio*100)),
		From:       from,
		To:         to,
		Diff:       diff,
		Similarity: ratio,
	})
}
