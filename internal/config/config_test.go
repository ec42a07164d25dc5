package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smileynet/addressbook/internal/book"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addressbook.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Birthdays.WindowDays != 7 {
		t.Errorf("default window = %d, want 7", cfg.Birthdays.WindowDays)
	}
	if cfg.Birthdays.LeapDay != "feb28" {
		t.Errorf("default leap day = %q, want %q", cfg.Birthdays.LeapDay, "feb28")
	}
	if !cfg.Phones.AllowDuplicates {
		t.Error("duplicates should be allowed by default")
	}
	if cfg.UI.Plain {
		t.Error("plain UI should be off by default")
	}
	if cfg.Log.File != "" {
		t.Errorf("default log file = %q, want empty", cfg.Log.File)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `
birthdays:
  window_days: 14
  leap_day: mar1
phones:
  allow_duplicates: false
ui:
  plain: true
log:
  file: /tmp/addressbook.log
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Birthdays: Birthdays{WindowDays: 14, LeapDay: "mar1"},
		Phones:    Phones{AllowDuplicates: false},
		UI:        UI{Plain: true},
		Log:       Log{File: "/tmp/addressbook.log", Level: "debug"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/addressbook.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "{{invalid yaml")); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, `
birthdays:
  windw_days: 3
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should return error for unknown field 'windw_days'")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# just a comment\n"))
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Setup: user config sets the window and the leap day, project config
	// overrides only the window.
	userCfg := writeConfig(t, `
birthdays:
  window_days: 3
  leap_day: mar1
`)
	projectCfg := writeConfig(t, `
birthdays:
  window_days: 10
phones:
  allow_duplicates: false
`)

	cfg, err := LoadLayered(userCfg, "", projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Window from project config (overrides user).
	if cfg.Birthdays.WindowDays != 10 {
		t.Errorf("window = %d, want 10", cfg.Birthdays.WindowDays)
	}
	// Leap day from user config (project doesn't set it).
	if cfg.Birthdays.LeapDay != "mar1" {
		t.Errorf("leap day = %q, want %q", cfg.Birthdays.LeapDay, "mar1")
	}
	// An explicit false overrides the true default.
	if cfg.Phones.AllowDuplicates {
		t.Error("allow_duplicates = true, want false")
	}
	// Log level retains default when no layer sets it.
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want default %q", cfg.Log.Level, "info")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_InvalidLayer(t *testing.T) {
	if _, err := LoadLayered(writeConfig(t, "ui: [")); err == nil {
		t.Fatal("LoadLayered() should fail on invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "ADDRESSBOOK_WINDOW_DAYS overrides window",
			envs: map[string]string{"ADDRESSBOOK_WINDOW_DAYS": "21"},
			check: func(t *testing.T, c Config) {
				if c.Birthdays.WindowDays != 21 {
					t.Errorf("window = %d, want 21", c.Birthdays.WindowDays)
				}
			},
		},
		{
			name: "ADDRESSBOOK_LEAP_DAY overrides leap day",
			envs: map[string]string{"ADDRESSBOOK_LEAP_DAY": "mar1"},
			check: func(t *testing.T, c Config) {
				if c.Birthdays.LeapDay != "mar1" {
					t.Errorf("leap day = %q, want %q", c.Birthdays.LeapDay, "mar1")
				}
			},
		},
		{
			name: "ADDRESSBOOK_PLAIN overrides plain",
			envs: map[string]string{"ADDRESSBOOK_PLAIN": "true"},
			check: func(t *testing.T, c Config) {
				if !c.UI.Plain {
					t.Error("plain = false, want true")
				}
			},
		},
		{
			name: "ADDRESSBOOK_LOG_FILE and LEVEL override log",
			envs: map[string]string{"ADDRESSBOOK_LOG_FILE": "/var/log/ab.log", "ADDRESSBOOK_LOG_LEVEL": "warn"},
			check: func(t *testing.T, c Config) {
				if c.Log.File != "/var/log/ab.log" || c.Log.Level != "warn" {
					t.Errorf("log = %+v, want file /var/log/ab.log level warn", c.Log)
				}
			},
		},
		{
			name:    "invalid ADDRESSBOOK_WINDOW_DAYS returns error",
			envs:    map[string]string{"ADDRESSBOOK_WINDOW_DAYS": "a week"},
			wantErr: true,
		},
		{
			name:    "invalid ADDRESSBOOK_PLAIN returns error",
			envs:    map[string]string{"ADDRESSBOOK_PLAIN": "sometimes"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "zero window",
			modify:  func(c *Config) { c.Birthdays.WindowDays = 0 },
			wantErr: true,
		},
		{
			name:    "negative window",
			modify:  func(c *Config) { c.Birthdays.WindowDays = -7 },
			wantErr: true,
		},
		{
			name:    "unknown leap day policy",
			modify:  func(c *Config) { c.Birthdays.LeapDay = "feb29" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
		{
			name:   "mar1 and debug are valid",
			modify: func(c *Config) { c.Birthdays.LeapDay = "mar1"; c.Log.Level = "debug" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Birthdays.WindowDays = 3

	b := book.New(cfg.BookOptions()...)
	if b.Window() != 3 {
		t.Errorf("book window = %d, want 3", b.Window())
	}
}
