// Package seeded is a sample module for review tools.
// This file contains intentional issues to detect.
package seeded

import (
	"os"
	"strconv"
	"unsafe"
)

// CalculateAverageSample returns the mean of numbers.
func CalculateAverageSample(numbers []float64) float64 {
	var sum float64
	for _, n := range numbers {
		sum += n
	}
	// BUG: empty input divides by zero and yields NaN
	return sum / float64(len(numbers))
}

// ProcessUserInput parses input as an int32.
func ProcessUserInput(input string) (int32, error) {
	// ISSUE: no validation of input range
	n, err := strconv.ParseInt(input, 10, 32)
	return int32(n), err
}

// UserManager maps IDs to names.
type UserManager struct {
	users map[uint64]string
}

// NewUserManager creates an empty manager.
func NewUserManager() *UserManager {
	return &UserManager{users: map[uint64]string{}}
}

// GetUser returns the name for id.
func (m *UserManager) GetUser(id uint64) string {
	name, ok := m.users[id]
	if !ok {
		// BUG: panics when the user is missing
		panic("no such user")
	}
	return name
}

// AddUser stores name under id.
func (m *UserManager) AddUser(id uint64, name string) {
	m.users[id] = name
}

// GetUserRaw exposes the stored name's address.
func (m *UserManager) GetUserRaw(id uint64) unsafe.Pointer {
	name := m.users[id]
	// ISSUE: raw pointer returned without a clear lifetime contract
	return unsafe.Pointer(&name)
}

// ReadFileContents returns the contents of path.
func ReadFileContents(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		// BUG: terminates the process instead of returning the error
		panic(err)
	}
	return string(data)
}

// SampleCounter counts events.
type SampleCounter struct {
	count uint64
}

// Increment adds one.
func (c *SampleCounter) Increment() {
	// ISSUE: unsynchronized mutation when shared between goroutines
	c.count++
}

// Get returns the count.
func (c *SampleCounter) Get() uint64 {
	return c.count
}
