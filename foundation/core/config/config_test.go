package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleTOML = `
[engine]
scale = 4
rounding_mode = "half_even"

[server]
addr = ":9000"
cache_ttl = "30s"
tags = ["a", "b"]

[journal]
enabled = false
`

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	cfg.lookupEnv = func(string) (string, bool) { return "", false }

	if got := cfg.GetInt("engine.scale", 2); got != 4 {
		t.Errorf("engine.scale = %d, want 4", got)
	}
	if got := cfg.GetString("engine.rounding_mode"); got != "half_even" {
		t.Errorf("engine.rounding_mode = %q", got)
	}
	if got := cfg.GetDuration("server.cache_ttl"); got != 30*time.Second {
		t.Errorf("server.cache_ttl = %v", got)
	}
	if got := cfg.GetBool("journal.enabled", true); got {
		t.Error("journal.enabled should be false")
	}
	if got := cfg.GetStringSlice("server.tags"); len(got) != 2 || got[1] != "b" {
		t.Errorf("server.tags = %v", got)
	}
	if got := cfg.GetInt("engine.missing", 7); got != 7 {
		t.Errorf("missing key default = %d", got)
	}
	if cfg.Has("engine.missing") {
		t.Error("Has() reported a missing key")
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadFromString("engine:\n  scale: 3\n  policy: notice_null\n", FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	cfg.lookupEnv = func(string) (string, bool) { return "", false }
	if got := cfg.GetInt("engine.scale"); got != 3 {
		t.Errorf("engine.scale = %d", got)
	}
	if got := cfg.GetString("engine.policy"); got != "notice_null" {
		t.Errorf("engine.policy = %q", got)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	cfg.envPrefix = "numerik"
	env := map[string]string{"NUMERIK_ENGINE_SCALE": "6", "NUMERIK_SERVER_TAGS": "x, y ,z"}
	cfg.lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	if got := cfg.GetInt("engine.scale"); got != 6 {
		t.Errorf("engine.scale = %d, want 6", got)
	}
	if got := cfg.GetStringSlice("server.tags"); len(got) != 3 || got[1] != "y" {
		t.Errorf("server.tags = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := LoadFromString("[engine\nscale=", FormatTOML)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if mdwerror.GetCode(err) != mdwerror.Code(mdwerrors.CodeConfigParseFailed) {
		t.Errorf("code = %s", mdwerror.GetCode(err))
	}

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	if mdwerror.GetCode(err) != mdwerror.Code(mdwerrors.CodeConfigNotFound) {
		t.Errorf("missing file code = %s", mdwerror.GetCode(err))
	}

	if _, err := Load("  "); err == nil {
		t.Error("blank path should fail")
	}
}

func TestDefaultsAndSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numerik.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  scale: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadWithOptions(path, LoadOptions{Defaults: map[string]interface{}{
		"engine": map[string]interface{}{"scale": 2, "rounding_mode": "half_up"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	cfg.lookupEnv = nil

	if cfg.Format() != FormatYAML {
		t.Errorf("format = %s", cfg.Format())
	}
	if got := cfg.GetInt("engine.scale"); got != 5 {
		t.Errorf("file value should win over default, got %d", got)
	}
	if got := cfg.GetString("engine.rounding_mode"); got != "half_up" {
		t.Errorf("default not applied, got %q", got)
	}

	cfg.Set("server.addr", ":1234")
	if got := cfg.GetString("server.addr"); got != ":1234" {
		t.Errorf("Set() not visible, got %q", got)
	}
	keys := cfg.Keys()
	if len(keys) != 2 || keys[0] != "engine.scale" || keys[1] != "server.addr" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestReloadNotifiesHandlers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numerik.toml")
	if err := os.WriteFile(path, []byte("[engine]\nscale = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.lookupEnv = nil

	var oldScale, newScale int
	cfg.OnChange(func(o, n *Config) {
		oldScale = o.GetInt("engine.scale")
		newScale = n.GetInt("engine.scale")
	})

	if err := os.WriteFile(path, []byte("[engine]\nscale = 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if oldScale != 1 || newScale != 8 {
		t.Errorf("handler saw %d -> %d", oldScale, newScale)
	}
	if got := cfg.GetInt("engine.scale"); got != 8 {
		t.Errorf("engine.scale after reload = %d", got)
	}
}

func TestWatchStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numerik.toml")
	if err := os.WriteFile(path, []byte("[engine]\nscale = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.lookupEnv = nil

	changed := make(chan int, 64)
	cfg.OnChange(func(_, n *Config) {
		select {
		case changed <- n.GetInt("engine.scale"):
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cfg.Watch(ctx, nil) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[engine]\nscale = 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// a truncating write may surface as several events
	timeout := time.After(3 * time.Second)
wait:
	for {
		select {
		case got := <-changed:
			if got == 9 {
				break wait
			}
		case <-timeout:
			t.Error("no reload observed")
			break wait
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}
