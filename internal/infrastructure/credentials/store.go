// Package credentials loads the admin credential file and verifies HTTP Basic
// credentials against it.
//
// The file holds one "user:password" entry per line. Empty lines and lines
// starting with '#' are ignored. A password starting with $2a$, $2b$ or $2y$
// is treated as a bcrypt hash.
package credentials

import (
	"bufio"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMalformedCredentials = errors.New("malformed credentials")
	ErrMissingPassword      = errors.New("missing password")
	ErrBadCredentials       = errors.New("bad credentials")
)

type Store struct {
	entries map[string]string
}

func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	store, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	return store, nil
}

func Parse(r io.Reader) (*Store, error) {
	store := &Store{entries: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		user, password, ok := strings.Cut(line, ":")
		if !ok || user == "" {
			return nil, fmt.Errorf("%w: line %d is not user:password", ErrMalformedCredentials, lineNo)
		}
		store.entries[user] = password
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return store, nil
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Verify checks a user/password pair. Unknown users and wrong passwords both
// fail with ErrBadCredentials.
func (s *Store) Verify(user, password string) error {
	if s == nil {
		return ErrBadCredentials
	}
	stored, ok := s.entries[user]
	if !ok {
		return ErrBadCredentials
	}
	if isBcryptHash(stored) {
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return ErrBadCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrBadCredentials
	}
	return nil
}

// ParseBasic extracts user and password from an Authorization header value.
func ParseBasic(header string) (string, string, error) {
	scheme, encoded, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Basic") {
		return "", "", fmt.Errorf("%w: expected Basic authorization", ErrMalformedCredentials)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedCredentials, err)
	}
	user, password, ok := strings.Cut(string(decoded), ":")
	if !ok || password == "" {
		return "", "", ErrMissingPassword
	}
	return user, password, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
