package account

import (
	"errors"
	"sync"
)

// ErrEmailTaken reports a signup attempt with an already-registered email.
var ErrEmailTaken = errors.New("email already registered")

// UserRepo defines the interface for user storage operations.
type UserRepo interface {
	// Upsert creates or updates a user
	Upsert(user *User) error

	// GetByEmail retrieves a user by email
	GetByEmail(email string) (*User, error)

	// GetByID retrieves a user by id
	GetByID(id string) (*User, error)
}

var _ UserRepo = (*InMemoryUserRepo)(nil)

// InMemoryUserRepo is an in-memory implementation of UserRepo.
type InMemoryUserRepo struct {
	lock     sync.RWMutex
	users    map[string]*User
	emailIds map[string]string // email to user id
}

// NewInMemoryUserRepo creates a new in-memory user repository
func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

func (r *InMemoryUserRepo) Upsert(user *User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.users[user.ID] = user
	r.emailIds[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepo) GetByEmail(email string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIds[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return r.users[id], nil
}

func (r *InMemoryUserRepo) GetByID(id string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}
