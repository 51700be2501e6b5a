package auth

import (
	"context"

	"github.com/tareahub/go-tarea-server/users"
)

// Principal is the request-scoped result of successful authentication: the
// resolved user plus the token pair the caller should continue with. When the
// verification gate rotated a token, the corresponding flag is set so the
// transport can emit the replacement to the client.
type Principal struct {
	User           *users.User
	AccessToken    string
	RefreshToken   string
	AccessRotated  bool
	RefreshRotated bool
}

type principalKey struct{}

// ContextWithPrincipal returns a child context carrying p.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the principal attached by the
// authentication gate, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
