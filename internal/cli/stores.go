package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/randomizer/pkg/adapters/file"
	"github.com/aretw0/randomizer/pkg/adapters/loam"
	"github.com/aretw0/randomizer/pkg/adapters/memory"
	"github.com/aretw0/randomizer/pkg/adapters/redis"
	"github.com/aretw0/randomizer/pkg/persistence/middleware"
	"github.com/aretw0/randomizer/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore resolves a store reference:
//
//	""            no store
//	memory        process local store
//	file[:dir]    JSON files under dir (default .randomizer/fixtures)
//	redis[:addr]  Redis at addr (default cfg.RedisAddr)
//
// The returned closer releases the backend and is never nil.
func OpenStore(ctx context.Context, ref string, cfg Config) (ports.FixtureStore, io.Closer, error) {
	store, closer, err := openBackend(ctx, ref, cfg)
	if err != nil || store == nil || cfg.StoreKey == "" {
		return store, closer, err
	}

	key, err := base64.StdEncoding.DecodeString(cfg.StoreKey)
	if err != nil || len(key) != 32 {
		_ = closer.Close()
		return nil, nil, errors.New("RANDOMIZER_STORE_KEY must be 32 bytes in base64")
	}
	encrypted := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	return middleware.Chain(store, encrypted), closer, nil
}

func openBackend(ctx context.Context, ref string, cfg Config) (ports.FixtureStore, io.Closer, error) {
	kind, arg, _ := strings.Cut(ref, ":")
	switch kind {
	case "":
		return nil, nopCloser{}, nil
	case "memory":
		return memory.NewStore(), nopCloser{}, nil
	case "file":
		return file.New(arg), nopCloser{}, nil
	case "redis":
		addr := cfg.RedisAddr
		if arg != "" {
			addr = arg
		}
		store := redis.New(addr, cfg.RedisPass, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis at %s: %w", addr, err)
		}
		return store, store, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (want memory, file[:dir] or redis[:addr])", ref)
}

// OpenLibrary opens the template directory dir. An empty dir yields a
// nil library.
func OpenLibrary(dir string) (ports.TemplateLibrary, error) {
	if dir == "" {
		return nil, nil
	}
	lib, err := loam.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates at %s: %w", dir, err)
	}
	return lib, nil
}
