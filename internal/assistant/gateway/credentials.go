package gateway

import (
	"context"
	"os"
	"strings"
)

// CredentialSource yields the OpenAI secret key. An empty key with a nil error means
// the source has nothing configured.
type CredentialSource interface {
	SecretKey(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to CredentialSource
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) SecretKey(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticCredential is a fixed secret, usually from the config file
type StaticCredential string

func (s StaticCredential) SecretKey(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}

// EnvCredential reads the secret from an environment variable
type EnvCredential string

func (e EnvCredential) SecretKey(context.Context) (string, error) {
	if e == "" {
		return "", nil
	}
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// ChainCredentials tries each source in order and returns the first non-empty key.
// Lookup errors abort the chain.
func ChainCredentials(sources ...CredentialSource) CredentialSource {
	return CredentialFunc(func(ctx context.Context) (string, error) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			key, err := src.SecretKey(ctx)
			if err != nil {
				return "", err
			}
			if key != "" {
				return key, nil
			}
		}
		return "", nil
	})
}
