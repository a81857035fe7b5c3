package i18n

import (
	"io"
	"log/slog"
	"testing"
)

func TestSetLang(t *testing.T) {
	t.Cleanup(func() { SetLang("en") })

	tests := []struct {
		locale string
		want   string
	}{
		{"pt_BR", "pt"},
		{"es-ES", "es"},
		{"ru", "ru"},
		{"RU_ru", "ru"},
		{"de_DE", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := SetLang(tt.locale); got != tt.want {
				t.Errorf("SetLang(%q) = %q, want %q", tt.locale, got, tt.want)
			}
			if got := Lang(); got != tt.want {
				t.Errorf("Lang() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestT(t *testing.T) {
	t.Cleanup(func() { SetLang("en") })

	SetLang("es")
	if got := T("Skip Break"); got != "Saltar Descanso" {
		t.Errorf("T(Skip Break) = %q", got)
	}
	if got := T("untranslated"); got != "untranslated" {
		t.Errorf("T(untranslated) = %q", got)
	}

	SetLang("en")
	if got := T("Skip Break"); got != "Skip Break" {
		t.Errorf("english T(Skip Break) = %q", got)
	}
}

func TestDetectHonoursEnvironment(t *testing.T) {
	t.Cleanup(func() { SetLang("en") })
	t.Setenv(EnvLang, "pt")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := Detect(logger); got != "pt" {
		t.Fatalf("Detect() = %q, want pt", got)
	}
}
