// Package users holds the User Store: the repository interface used by the
// account services and its PostgreSQL, SQLite and in-memory implementations.
package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/server/models"
)

// Repository persists user identities. Implementations must enforce
// user name uniqueness atomically inside Create and report a collision as
// common.ErrUsernameTaken.
type Repository interface {
	// Create inserts user, filling ID and DateCreated.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound when no user has that name.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// GetByID returns common.ErrorNotFound when no user has that id.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

func dbError(err error) error {
	return fmt.Errorf("db error: %w: %w", common.ErrStore, err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var nickname sql.NullString
	if err := row.Scan(&user.ID, &user.UserName, &user.FullName, &nickname, &user.PasswordHash, &user.DateCreated); err != nil {
		return nil, err
	}
	user.Nickname = stringPtr(nickname)
	return user, nil
}
