// Package users holds in-memory user registries keyed by numeric ID.
//
// Lookups never assume presence: Get reports ErrNotFound and Lookup follows
// the comma-ok convention. Records are returned by value so callers cannot
// alias registry storage.
package users

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrNotFound is returned when no user has the requested ID.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidUser is returned by Database.Add for malformed records.
	ErrInvalidUser = errors.New("invalid user")
)

// User is a full user record.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidateName rejects a blank name.
func (u User) ValidateName() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user %d: empty name: %w", u.ID, ErrInvalidUser)
	}
	return nil
}

// Validate checks the name and email of u.
func (u User) Validate() error {
	if err := u.ValidateName(); err != nil {
		return err
	}
	if !ValidEmail(u.Email) {
		return fmt.Errorf("user %d: malformed email %q: %w", u.ID, u.Email, ErrInvalidUser)
	}
	return nil
}

// ValidEmail reports whether s looks like local@domain.tld with no spaces.
func ValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Directory maps user IDs to display names.
type Directory struct {
	mu    sync.RWMutex
	names map[uint64]string
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{names: make(map[uint64]string)}
}

// Add stores name under id, replacing any previous entry.
func (d *Directory) Add(id uint64, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[id] = name
}

// Get returns the name stored under id.
func (d *Directory) Get(id uint64) (string, error) {
	name, ok := d.Lookup(id)
	if !ok {
		return "", fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return name, nil
}

// Lookup returns the name stored under id and whether it exists.
func (d *Directory) Lookup(id uint64) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[id]
	return name, ok
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}

// Database maps user IDs to full records.
type Database struct {
	mu    sync.RWMutex
	users map[uint64]User
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{users: make(map[uint64]User)}
}

// Add validates u and stores it under u.ID, replacing any previous record.
func (db *Database) Add(u User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[u.ID] = u
	return nil
}

// Get returns a copy of the record stored under id.
func (db *Database) Get(id uint64) (User, error) {
	u, ok := db.Lookup(id)
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

// Lookup returns a copy of the record stored under id and whether it exists.
func (db *Database) Lookup(id uint64) (User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	u, ok := db.users[id]
	return u, ok
}

// Delete removes the record stored under id and reports whether one existed.
func (db *Database) Delete(id uint64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.users[id]
	delete(db.users, id)
	return ok
}

// List returns all records ordered by ID.
func (db *Database) List() []User {
	db.mu.RLock()
	out := make([]User, 0, len(db.users))
	for _, u := range db.users {
		out = append(out, u)
	}
	db.mu.RUnlock()

	slices.SortFunc(out, func(a, b User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of records.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.users)
}
