package entities

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// User is a platform account.
type User struct {
	Base
	Name     string `dynamodbav:"name" json:"name"`
	Email    string `dynamodbav:"email" json:"email"`
	Password string `dynamodbav:"password" json:"-"`
}

// Users manages the user lifecycle.
type Users struct {
	g      Gateway
	logger *slog.Logger
}

// NewUsers creates the user service. A nil logger falls back to slog.Default.
func NewUsers(g Gateway, logger *slog.Logger) *Users {
	if logger == nil {
		logger = slog.Default()
	}
	return &Users{g: g, logger: logger}
}

// CreateUser holds the fields for a new user. Password arrives as an opaque
// hash; hashing happens upstream.
type CreateUser struct {
	Name     string
	Email    string
	Password string
}

// Create validates, allocates an id, and writes the user document. Email is
// case-normalized before validation and held unique across the collection,
// so a second registration with the same address fails with
// store.ErrDuplicateValue.
func (s *Users) Create(ctx context.Context, in CreateUser) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validate.First(
		validate.Field("name", validate.NonEmpty(in.Name)),
		validate.Field("email", validate.Email(email)),
		validate.Field("password", validate.NonEmpty(in.Password)),
	); err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColUsers)
	if err != nil {
		return nil, err
	}

	doc, err := s.g.Insert(ctx, ColUsers, id, store.Fields{
		"name":     in.Name,
		"email":    email,
		"password": in.Password,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "id", id)
	return decode[User](doc)
}

// Get returns a user by id.
func (s *Users) Get(ctx context.Context, id string) (*User, error) {
	doc, err := s.g.Get(ctx, ColUsers, id)
	if err != nil {
		return nil, err
	}
	return decode[User](doc)
}

// FindByEmail returns the user holding a case-normalized email address.
// Consumed by the routing layer's login path.
func (s *Users) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	doc, err := s.g.FindByIndex(ctx, ColUsers, EmailIndex, "email", email)
	if err != nil {
		return nil, err
	}
	return decode[User](doc)
}
