package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEnter, "Enter"},
		{KeyPageDown, "PageDown"},
		{KeyF3, "F3"},
		{Key(200), "Key(200)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyClasses(t *testing.T) {
	if !KeyF12.IsFunctionKey() || KeyEnter.IsFunctionKey() {
		t.Error("IsFunctionKey misclassified")
	}
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassified")
	}
	if !KeyHome.IsNavigationKey() || !KeyPageUp.IsNavigationKey() || KeyDelete.IsNavigationKey() {
		t.Error("IsNavigationKey misclassified")
	}
	if KeyRune.IsSpecial() || KeyNone.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("IsSpecial misclassified")
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"enter", KeyEnter},
		{"CR", KeyEnter},
		{"Esc", KeyEscape},
		{" pgdn ", KeyPageDown},
		{"f10", KeyF10},
		{"rune", KeyNone},
		{"bogus", KeyNone},
	}
	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
