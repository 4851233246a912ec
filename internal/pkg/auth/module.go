package auth

import (
	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newSessions),
	fx.Provide(newGuard),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type sessionParams struct {
	fx.In

	Config *config.Config
}

func newSessions(p sessionParams) Sessions {
	return NewHMACSessions(p.Config.AdminSessionSecret, Options{TTL: p.Config.AdminSessionTTL})
}

type guardParams struct {
	fx.In

	Sessions Sessions
	Hasher   PasswordHasher
	Config   *config.Config
}

func newGuard(p guardParams) *Guard {
	return NewGuard(p.Sessions, p.Hasher, p.Config.AdminAPIToken, p.Config.AdminPasswordHash)
}
