package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/pkg/adapters/file"
	"github.com/aretw0/randomizer/pkg/adapters/memory"
	"github.com/aretw0/randomizer/pkg/adapters/redis"
	"github.com/aretw0/randomizer/pkg/domain"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetenv(t, "RANDOMIZER_ADDR", "RANDOMIZER_REDIS_ADDR", "RANDOMIZER_LOG_LEVEL", "RANDOMIZER_WORKERS")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RANDOMIZER_SEED", "abc")
	t.Setenv("RANDOMIZER_WORKERS", "4")
	t.Setenv("RANDOMIZER_STORE", "file:out")
	t.Setenv("RANDOMIZER_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Seed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "file:out", cfg.Store)
	assert.Equal(t, "debug", cfg.Level().String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("RANDOMIZER_WORKERS", "many")
	_, err := LoadConfig()
	assert.Error(t, err)

	unsetenv(t, "RANDOMIZER_WORKERS")
	t.Setenv("RANDOMIZER_LOG_LEVEL", "loud")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "RANDOMIZER_LOG_LEVEL")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := Config{RedisAddr: mr.Addr()}

	store, closer, err := OpenStore(ctx, "", cfg)
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closer.Close())

	store, _, err = OpenStore(ctx, "memory", cfg)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	store, _, err = OpenStore(ctx, "file:"+t.TempDir(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, store)

	store, closer, err = OpenStore(ctx, "redis", cfg)
	require.NoError(t, err)
	assert.IsType(t, &redis.Store{}, store)
	assert.NoError(t, closer.Close())

	_, _, err = OpenStore(ctx, "s3:bucket", cfg)
	assert.ErrorContains(t, err, "unknown store")
}

func TestOpenStore_Encrypted(t *testing.T) {
	ctx := context.Background()
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	dir := t.TempDir()

	store, _, err := OpenStore(ctx, "file:"+dir, Config{StoreKey: key})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleFixture()))

	raw, _, err := OpenStore(ctx, "file:"+dir, Config{})
	require.NoError(t, err)
	sealed, err := raw.Load(ctx, "id-1")
	require.NoError(t, err)
	assert.Empty(t, sealed.Seed)

	opened, err := store.Load(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "abc", opened.Seed)

	_, _, err = OpenStore(ctx, "memory", Config{StoreKey: "c2hvcnQ="})
	assert.ErrorContains(t, err, "RANDOMIZER_STORE_KEY")
}

func TestOpenLibrary_Empty(t *testing.T) {
	lib, err := OpenLibrary("")
	require.NoError(t, err)
	assert.Nil(t, lib)
}

func sampleFixture() *domain.Fixture {
	obj := randomizer.NewObject(3)
	obj.Set("zeta", 1)
	obj.Set("alpha", "two")
	obj.Set("kids", []randomizer.Object{})

	return &domain.Fixture{
		ID:        "id-1",
		Blueprint: "sample",
		Seed:      "abc",
		Values:    []any{obj, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWriteFixture_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFixture(&buf, sampleFixture(), OutputOptions{ValuesOnly: true}))

	out := buf.String()
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"), "object keys keep template order")

	var values []any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &values))
	assert.Len(t, values, 2)
}

func TestWriteFixture_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFixture(&buf, sampleFixture(), OutputOptions{Format: FormatYAML}))

	want := `id: id-1
blueprint: sample
seed: abc
workers: 0
created_at: 2024-01-01T00:00:00Z
values:
  - zeta: 1
    alpha: two
    kids: []
  - 2024-05-06T07:08:09Z
`
	assert.Equal(t, want, buf.String())
}

func TestWriteFixture_Mermaid(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFixture(&buf, sampleFixture(), OutputOptions{Format: FormatMermaid})
	assert.Error(t, err)

	require.NoError(t, WriteFixture(&buf, sampleFixture(), OutputOptions{Format: FormatMermaid, Children: "kids", Label: "alpha"}))
	assert.Contains(t, buf.String(), "n0((\"two\"))")
}

func TestWriteFixture_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFixture(&buf, sampleFixture(), OutputOptions{Format: FormatMarkdown}))
	assert.Contains(t, buf.String(), "# sample")
	assert.Contains(t, buf.String(), "- **alpha**: two")
}

func TestWriteFixture_UnknownFormat(t *testing.T) {
	err := WriteFixture(&bytes.Buffer{}, sampleFixture(), OutputOptions{Format: "toml"})
	assert.ErrorContains(t, err, "unknown format")
}

func TestSignalContext_Cancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}

func TestSignalContext_Interrupt(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(os.Interrupt))

	select {
	case <-sc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled by interrupt")
	}
	assert.Equal(t, os.Interrupt, sc.Signal())
	assert.ErrorContains(t, context.Cause(sc), "received interrupt")
}
