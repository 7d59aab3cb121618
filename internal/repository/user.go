package repository

import (
	"context"
	"fmt"
)

// UserRepository answers the identity questions the order core needs:
// does the user exist, and does an address belong to them. User CRUD
// lives elsewhere.
type UserRepository struct{}

// NewUserRepository creates the user/address reader.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Exists reports whether a user row exists.
func (r *UserRepository) Exists(ctx context.Context, q Querier, userID int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return exists, nil
}

// AddressBelongsToUser reports whether the address exists and is owned
// by the user. Ordering to someone else's address is rejected on this.
func (r *UserRepository) AddressBelongsToUser(ctx context.Context, q Querier, addressID, userID int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM addresses WHERE address_id = $1 AND user_id = $2)`,
		addressID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check address %d for user %d: %w", addressID, userID, err)
	}
	return exists, nil
}
