// Package seeded holds utility helpers for data processing.
// Each function below carries a deliberate defect for review tools to find.
package seeded

import (
	"os"
	"strconv"
	"unsafe"
)

// CalculateAverage returns the mean of numbers.
func CalculateAverage(numbers []float64) float64 {
	var sum float64
	for _, n := range numbers {
		sum += n
	}
	// BUG: empty input divides by zero and yields NaN
	return sum / float64(len(numbers))
}

// FindMax returns the largest value.
func FindMax(numbers []int32) int32 {
	// BUG: panics on an empty slice
	max := numbers[0]
	for _, n := range numbers[1:] {
		if n > max {
			max = n
		}
	}
	return max
}

// User is a user record.
type User struct {
	ID    uint64
	Name  string
	Email string
}

// UserDatabase stores users by ID.
type UserDatabase struct {
	users map[uint64]*User
}

// NewUserDatabase creates an empty database.
func NewUserDatabase() *UserDatabase {
	return &UserDatabase{users: map[uint64]*User{}}
}

// GetUser returns the user with id.
func (db *UserDatabase) GetUser(id uint64) *User {
	// BUG: nil dereference by callers when the user is missing
	return db.users[id]
}

// AddUser stores user.
func (db *UserDatabase) AddUser(user *User) {
	db.users[user.ID] = user
}

// GetUserPtr exposes the stored record's address.
func (db *UserDatabase) GetUserPtr(id uint64) uintptr {
	// ISSUE: untracked raw address with no lifetime guarantee
	return uintptr(unsafe.Pointer(db.users[id]))
}

// ReadFile returns the contents of path.
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		// BUG: terminates the process instead of returning the error
		panic(err)
	}
	return string(data)
}

// ParseNumber parses input as an int32.
func ParseNumber(input string) int32 {
	// BUG: parse error discarded
	n, _ := strconv.ParseInt(input, 10, 32)
	return int32(n)
}

// UnsafeBufferAccess reads a byte from a fixed buffer.
func UnsafeBufferAccess(index uintptr) byte {
	buffer := []byte{1, 2, 3, 4, 5}
	// BUG: no bounds check before pointer arithmetic
	return *(*byte)(unsafe.Add(unsafe.Pointer(&buffer[0]), index))
}

// Counter counts events.
type Counter struct {
	count uint64
}

// Increment adds one.
func (c *Counter) Increment() {
	// ISSUE: unsynchronized mutation when shared between goroutines
	c.count++
}

// Value returns the count.
func (c *Counter) Value() uint64 {
	return c.count
}

// Divide returns a / b.
func Divide(a, b int32) int32 {
	// BUG: no zero divisor check
	// ISSUE: MinInt32 / -1 overflow not considered
	return a / b
}
