package db

import (
	"github.com/go-playground/validator/v10"
)

// Store is the zoo data access layer. Every method runs on the Client's
// single connection; none opens its own.
type Store struct {
	client   *Client
	validate *validator.Validate
}

// NewStore creates a Store over client
func NewStore(client *Client) *Store {
	return &Store{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Client returns the connection manager backing the store
func (s *Store) Client() *Client {
	return s.client
}
