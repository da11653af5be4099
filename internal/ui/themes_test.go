package ui

import (
	"os"
	"testing"
)

// Theme tests mutate package state and run sequentially.

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" || ColorEnabled() {
		t.Errorf("InitTheme(true) = %q, want none", GetCurrentTheme().Name)
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("no-color theme should select the colorless TUI palette")
	}
}

func TestInitTheme_Default(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	if _, set := os.LookupEnv("NO_COLOR"); set {
		t.Skip("NO_COLOR is set in the test environment")
	}

	InitTheme(false)
	if GetCurrentTheme().Name != "dark" || !ColorEnabled() {
		t.Errorf("InitTheme(false) = %q, want dark", GetCurrentTheme().Name)
	}
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should select the dark TUI palette")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	if ColorEnabled() {
		t.Error("NO_COLOR should disable colors")
	}
}
