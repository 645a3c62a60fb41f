package auth

import (
	"context"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleEmployee
}

// Identity is the logged-in caller. For customers UserID is the account number.
type Identity struct {
	UserID    int64
	Name      string
	Role      Role
	SessionID string
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
