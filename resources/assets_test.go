package resources

import "testing"

func TestIcons(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused} {
		t.Run(name, func(t *testing.T) {
			first, err := Icon(name)
			if err != nil {
				t.Fatalf("Icon error: %v", err)
			}
			if len(first.Content()) == 0 {
				t.Fatal("icon is empty")
			}
			second := MustIcon(name)
			if first != second {
				t.Fatal("icon was not cached")
			}
		})
	}
}

func TestIconMissing(t *testing.T) {
	if _, err := Icon("missing.svg"); err == nil {
		t.Fatal("expected an error for a missing icon")
	}
}
