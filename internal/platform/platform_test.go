package platform

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestSingleInstance(t *testing.T) {
	name := "pomodoro-test-" + t.Name()

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("lock port unavailable: %v", err)
	}
	if guard.Address() != LockAddress(name) {
		t.Fatalf("Address() = %q, want %q", guard.Address(), LockAddress(name))
	}

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire = %v, want ErrAlreadyRunning", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("second Release error: %v", err)
	}

	again, err := AcquireSingleInstance(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestLockAddressStable(t *testing.T) {
	first := LockAddress("Pomodoro")
	if first != LockAddress("Pomodoro") {
		t.Fatal("lock address is not deterministic")
	}
	if !strings.HasPrefix(first, "127.0.0.1:") {
		t.Fatalf("lock address %q is not on localhost", first)
	}
}

func TestNilGuard(t *testing.T) {
	var guard *Guard
	if err := guard.Release(); err != nil {
		t.Fatalf("Release on nil guard: %v", err)
	}
	if guard.Address() != "" {
		t.Fatal("nil guard has an address")
	}
}

func TestFallbackConfigDir(t *testing.T) {
	home := filepath.FromSlash("/home/user")
	tests := []struct {
		goos string
		want string
	}{
		{"linux", filepath.Join(home, ".config")},
		{"freebsd", filepath.Join(home, ".config")},
		{"darwin", filepath.Join(home, "Library", "Application Support")},
		{"windows", filepath.Join(home, "AppData", "Roaming")},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := fallbackConfigDir(tt.goos, home); got != tt.want {
				t.Errorf("fallbackConfigDir(%s) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestConfigDirFromEnvironment(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)
	t.Setenv("AppData", base)

	dir, err := ConfigDir("Pomodoro")
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if filepath.Base(dir) != "Pomodoro" {
		t.Fatalf("ConfigDir() = %q, want a Pomodoro directory", dir)
	}
}

func TestResolveConfigDir(t *testing.T) {
	home := filepath.FromSlash("/home/user")
	lookupErr := errors.New("not defined")
	tests := []struct {
		name    string
		base    string
		baseErr error
		home    string
		homeErr error
		want    string
	}{
		{name: "config dir", base: filepath.FromSlash("/etc/xdg"), home: home, want: filepath.Join(filepath.FromSlash("/etc/xdg"), "Pomodoro")},
		{name: "home fallback", baseErr: lookupErr, home: home, want: filepath.Join(home, ".config", "Pomodoro")},
		{name: "empty config dir", home: home, want: filepath.Join(home, ".config", "Pomodoro")},
		{name: "both failed", baseErr: lookupErr, homeErr: lookupErr},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveConfigDir("linux", "Pomodoro", tt.base, tt.baseErr, tt.home, tt.homeErr)
			if tt.want == "" {
				if !errors.Is(err, ErrNoConfigDir) {
					t.Fatalf("error = %v, want ErrNoConfigDir", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("resolveConfigDir() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}
