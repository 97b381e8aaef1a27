package credentials

import (
	"context"
	"errors"
	"testing"
)

func TestEnvReadsAtCallTime(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvAPIKey, "")

	src := NewEnv()
	key, err := src.GeminiAPIKey(context.Background())
	if err != nil {
		t.Fatalf("GeminiAPIKey error: %v", err)
	}
	if key != "" {
		t.Fatalf("key = %q, want empty", key)
	}

	t.Setenv(EnvAPIKey, " fallback-key ")
	if key, _ = src.GeminiAPIKey(context.Background()); key != "fallback-key" {
		t.Fatalf("key = %q, want fallback-key", key)
	}

	t.Setenv(EnvGeminiAPIKey, "primary-key")
	if key, _ = src.GeminiAPIKey(context.Background()); key != "primary-key" {
		t.Fatalf("key = %q, want primary-key", key)
	}
}

func TestEnvCustomKeys(t *testing.T) {
	src := &Env{keys: []string{"A", "B"}, lookup: func(k string) (string, bool) {
		if k == "B" {
			return "from-b", true
		}
		return "   ", true
	}}
	key, err := src.GeminiAPIKey(context.Background())
	if err != nil || key != "from-b" {
		t.Fatalf("GeminiAPIKey() = %q, %v; want from-b", key, err)
	}
}

func TestEnvHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnv().GeminiAPIKey(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

type failingSource struct{ err error }

func (f failingSource) GeminiAPIKey(context.Context) (string, error) { return "", f.err }

func TestChain(t *testing.T) {
	ctx := context.Background()

	key, err := Chain{Static(""), nil, Static(" second ")}.GeminiAPIKey(ctx)
	if err != nil || key != "second" {
		t.Fatalf("Chain = %q, %v; want second", key, err)
	}

	boom := errors.New("boom")
	if _, err := (Chain{failingSource{err: boom}, Static("never")}).GeminiAPIKey(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if key, err := (Chain{}).GeminiAPIKey(ctx); key != "" || err != nil {
		t.Fatalf("empty chain = %q, %v", key, err)
	}
}
