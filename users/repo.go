package users

import "context"

// Store is the credential store contract. Lookups return nil without error
// when no row matches; errors are reserved for store failures.
type Store interface {
	GetByEmail(ctx context.Context, correo string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}
