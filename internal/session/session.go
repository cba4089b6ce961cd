package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maglo/maglo/pkg/domain"
)

// DefaultLocale is used when no locale has been persisted.
const DefaultLocale = "en-US"

const (
	tokenFile  = "token"
	userFile   = "user.json"
	localeFile = "locale"
)

// Store persists the session under a state directory, one file per entry:
// the bearer token, the last-known user snapshot, and the selected locale.
// A non-empty token is the authentication predicate; token validity is only
// ever discovered by the server rejecting a call.
type Store struct {
	dir string
}

// DefaultDir returns ~/.maglo.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".maglo"), nil
}

// New creates a store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Open creates a store at the default location.
func Open() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// Set persists the token and user, replacing any prior session.
func (s *Store) Set(token string, user domain.User) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0600); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes the token and user. Clearing an absent session is a no-op.
// The locale survives logout.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// Token returns the persisted bearer token, preferring the MAGLO_TOKEN
// environment variable when set. Empty string means no session.
func (s *Store) Token() string {
	if tok := os.Getenv("MAGLO_TOKEN"); tok != "" {
		return tok
	}
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// User returns the last-persisted user snapshot, or nil when absent or
// unreadable. A corrupt file fails open to nil — the token alone decides
// authentication.
func (s *Store) User() *domain.User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// IsAuthenticated reports whether a non-empty token is present. No network
// call, no expiry check.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Locale returns the persisted locale tag, or DefaultLocale.
func (s *Store) Locale() string {
	data, err := os.ReadFile(filepath.Join(s.dir, localeFile))
	if err != nil {
		return DefaultLocale
	}
	tag := strings.TrimSpace(string(data))
	if tag == "" {
		return DefaultLocale
	}
	return tag
}

// SetLocale persists the locale tag.
func (s *Store) SetLocale(tag string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, localeFile), []byte(tag), 0600); err != nil {
		return fmt.Errorf("save locale: %w", err)
	}
	return nil
}
