package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ConfigEnv, "")
	t.Chdir(t.TempDir())
	return home
}

func TestDefaults(t *testing.T) {
	home := isolate(t)

	v, err := New(nil)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	expected := &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    filepath.Join(home, ".nanoboard"),
			Slot:    "board-storage",
		},
		User: UserConfig{ID: "john", Name: "John"},
		Seed: true,
		Log:  LogConfig{Level: "warn"},
		HTTP: HTTPConfig{Addr: ":3001", Origins: []string{"*"}},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestPrecedence(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "custom.yaml")
	content := `storage:
  backend: sqlite
  slot: from-file
  debounce: 250ms
user:
  name: Ada
log:
  level: debug
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, file)
	t.Setenv("NANOBOARD_STORAGE_SLOT", "from-env")
	t.Setenv("NANOBOARD_USER_ID", "ada")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("user-name", "", "")
	if err := flags.Parse([]string{"--log-level", "error"}); err != nil {
		t.Fatal(err)
	}

	v, err := New(flags)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend from file, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Storage.Debounce)
	}
	if cfg.Storage.Slot != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.Storage.Slot)
	}
	if cfg.User.ID != "ada" || cfg.User.Name != "Ada" {
		t.Errorf("unexpected user %+v", cfg.User)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected flag to override file, got %q", cfg.Log.Level)
	}
}

func TestDiscoversConfigInWorkingDirectory(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("nanoboard.yaml", []byte("http:\n  addr: 127.0.0.1:9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := New(nil)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr from discovered file, got %q", cfg.HTTP.Addr)
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	t.Setenv("NANOBOARD_STORAGE_BACKEND", "postgres")
	t.Setenv("NANOBOARD_USER_NAME", " ")

	v, err := New(nil)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	_, err = Load(v)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{`storage.backend "postgres"`, "user.name is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	isolate(t)
	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := New(nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
