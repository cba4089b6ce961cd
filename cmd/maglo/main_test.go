package main

import (
	"testing"

	"github.com/maglo/maglo/internal/session"
)

func TestRunLocale(t *testing.T) {
	store := session.New(t.TempDir())

	if err := runLocale(store, []string{"tr-TR"}); err != nil {
		t.Fatalf("runLocale() error: %v", err)
	}
	if got := store.Locale(); got != "tr-TR" {
		t.Errorf("Locale() = %q, want %q", got, "tr-TR")
	}

	// No argument prints the current tag without touching the store.
	if err := runLocale(store, nil); err != nil {
		t.Errorf("runLocale() error: %v", err)
	}
	if got := store.Locale(); got != "tr-TR" {
		t.Errorf("Locale() = %q, want unchanged", got)
	}
}

func TestRunLocaleRejectsBadTags(t *testing.T) {
	store := session.New(t.TempDir())
	for _, tag := range []string{"english", "EN-us", "e-US", ""} {
		if err := runLocale(store, []string{tag}); err == nil {
			t.Errorf("runLocale(%q) should fail", tag)
		}
	}
}

func TestRunLogoutWhenSignedOut(t *testing.T) {
	store := session.New(t.TempDir())
	if err := runLogout(store); err != nil {
		t.Errorf("runLogout() on empty store error: %v", err)
	}
}

func TestRunWhoamiWhenSignedOut(t *testing.T) {
	store := session.New(t.TempDir())
	if err := runWhoami(store); err != nil {
		t.Errorf("runWhoami() on empty store error: %v", err)
	}
}
