package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/config"
)

// Module provides host authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newSecretHasher),
	fx.Provide(newKeyVerifier),
)

func newSecretHasher() SecretHasher {
	return NewBcryptHasher(0)
}

type verifierParams struct {
	fx.In

	Config *config.Config
	Hasher SecretHasher
}

func newKeyVerifier(p verifierParams) *KeyVerifier {
	return NewKeyVerifier(p.Config.APIKeyHash, p.Hasher)
}
