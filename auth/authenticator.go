// Package auth verifies credentials and carries signed-in identities between requests.
package auth

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity is what a session knows about its user.
type Identity struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// IdentityOf builds the session identity of a stored user.
func IdentityOf(u models.User) Identity {
	return Identity{ID: u.ID.String(), Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserFinder looks a user up by email and returns gorm.ErrRecordNotFound when there is none.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type Authenticator struct {
	users UserFinder
}

func NewAuthenticator(users UserFinder) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate checks an email/password pair against the stored hash.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrUserNotFound
		}
		return Identity{}, err
	}

	ok, err := ComparePassword(user.Password, password)
	if err != nil {
		return Identity{}, err
	}
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	return IdentityOf(user), nil
}
