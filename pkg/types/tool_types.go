package types

import (
	"time"

	"github.com/sunfmin/mcp-go-fixtures/pkg/fixtures"
	"github.com/sunfmin/mcp-go-fixtures/pkg/numeric"
	"github.com/sunfmin/mcp-go-fixtures/pkg/users"
)

// ToolContext provides shared context across all tool responses
type ToolContext struct {
	Timestamp time.Time `json:"timestamp"`           // Operation timestamp
	Operation string    `json:"operation,omitempty"` // Tool that produced the response
	Summary   string    `json:"summary,omitempty"`   // One-line description of the result
}

// ServerInfo describes the running server
type ServerInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	InstanceID string `json:"instanceId"`
}

type StatusResponse struct {
	Status   string      `json:"status"`
	Context  ToolContext `json:"context"`
	Server   ServerInfo  `json:"server"`
	Users    int         `json:"users"`    // Records in the user database
	Names    int         `json:"names"`    // Entries in the name directory
	Counter  uint64      `json:"counter"`  // Current shared counter value
	Fixtures []string    `json:"fixtures"` // Served fixture names
}

// Numeric responses

type AggregateResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Count   int         `json:"count"`  // Number of inputs
	Result  float64     `json:"result"` // Average, max or min
}

type DivideResponse struct {
	Status   string      `json:"status"`
	Context  ToolContext `json:"context"`
	Dividend int32       `json:"dividend"`
	Divisor  int32       `json:"divisor"`
	Quotient int32       `json:"quotient"`
}

type StatisticsResponse struct {
	Status  string        `json:"status"`
	Context ToolContext   `json:"context"`
	Stats   numeric.Stats `json:"stats"`
}

type ClampResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Value   float64     `json:"value"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Result  float64     `json:"result"`
}

type ParseResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Input   string      `json:"input"`
	Value   int32       `json:"value"`
	Min     int32       `json:"min"` // Accepted lower bound
	Max     int32       `json:"max"` // Accepted upper bound
}

// I/O responses

type FileResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Path    string      `json:"path"`
	Size    int         `json:"size"`
	Content string      `json:"content"`
}

type BufferResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Index   int         `json:"index"`
	Value   byte        `json:"value"`
	Length  int         `json:"length"`
}

// User responses

type UserResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	User    users.User  `json:"user"`
	Source  string      `json:"source"` // "database" or "directory"
}

type UserListResponse struct {
	Status  string       `json:"status"`
	Context ToolContext  `json:"context"`
	Users   []users.User `json:"users"`
}

// Counter responses

type CounterResponse struct {
	Status  string      `json:"status"`
	Context ToolContext `json:"context"`
	Value   uint64      `json:"value"`
	Added   uint64      `json:"added,omitempty"` // Increments performed by this call
}

// Fixture responses

type FixtureListResponse struct {
	Status   string      `json:"status"`
	Context  ToolContext `json:"context"`
	Fixtures []string    `json:"fixtures"`
}

type FixtureResponse struct {
	Status  string            `json:"status"`
	Context ToolContext       `json:"context"`
	Name    string            `json:"name"`
	Source  string            `json:"source"`
	Markers []fixtures.Marker `json:"markers"`
}

type MarkersResponse struct {
	Status  string            `json:"status"`
	Context ToolContext       `json:"context"`
	Markers []fixtures.Marker `json:"markers"`
}

type DiffResponse struct {
	Status     string      `json:"status"`
	Context    ToolContext `json:"context"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Diff       string      `json:"diff"`
	Similarity float64     `json:"similarity"` // Line match ratio in [0, 1]
}
