package credentials

import (
	"context"
	"os"
	"strings"
)

// Environment variables consulted for the Gemini key, in order.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvAPIKey       = "API_KEY"
)

// Source yields the API key for the generation service. An empty key with a
// nil error means no credential is configured.
type Source interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}

// Env reads the key from the process environment each time it is asked, so a
// key exported after start-up is picked up by the next generation.
type Env struct {
	keys   []string
	lookup func(string) (string, bool)
}

// NewEnv builds an environment source. With no keys it consults
// GEMINI_API_KEY and then API_KEY.
func NewEnv(keys ...string) *Env {
	if len(keys) == 0 {
		keys = []string{EnvGeminiAPIKey, EnvAPIKey}
	}
	return &Env{keys: keys, lookup: os.LookupEnv}
}

func (e *Env) GeminiAPIKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, key := range e.keys {
		if v, ok := e.lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
	}
	return "", nil
}

// Static always returns the same key. Used by the CLI's -key flag.
type Static string

func (s Static) GeminiAPIKey(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}

// Chain returns the first non-empty key from its sources.
type Chain []Source

func (c Chain) GeminiAPIKey(ctx context.Context) (string, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		key, err := src.GeminiAPIKey(ctx)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}
	return "", nil
}

var (
	_ Source = (*Env)(nil)
	_ Source = Static("")
	_ Source = Chain(nil)
)
