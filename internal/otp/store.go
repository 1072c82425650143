// Package otp keeps pending phone-verification codes in process memory.
//
// A code is issued for a phone number, checked with Verify, and then
// consumed exactly once by whichever flow it gates (login, checkout,
// phone change). Verification and consumption are separate steps because
// one verified code may legitimately authorize either of several
// downstream actions, but must still be deleted exactly once.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	codeTTL        = 5 * time.Minute
	resendCooldown = 30 * time.Second
	maxAttempts    = 3
	minPhoneDigits = 10

	// SweepInterval is how often the background sweeper drops expired
	// records.
	SweepInterval = 10 * time.Minute
)

var (
	ErrInvalidPhone    = errors.New("valid phone number is required")
	ErrRateLimited     = errors.New("resend requested before cooldown elapsed")
	ErrNotFound        = errors.New("code not found")
	ErrExpired         = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrNotVerified     = errors.New("phone not verified")
)

// MismatchError reports a wrong code along with how many attempts remain.
type MismatchError struct {
	Remaining int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("incorrect code, %d attempts remaining", e.Remaining)
}

type record struct {
	code      string
	createdAt time.Time
	expiresAt time.Time
	attempts  int
	verified  bool
}

// Store holds at most one pending verification per phone number.
type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	codeFn  func() (string, error)
	records map[string]*record
}

// NewStore builds a Store around the given clock. A nil codeFn means
// uniformly random 4-digit codes.
func NewStore(clk clock.Clock, codeFn func() (string, error)) *Store {
	if codeFn == nil {
		codeFn = generateCode
	}
	return &Store{
		clock:   clk,
		codeFn:  codeFn,
		records: make(map[string]*record),
	}
}

// generateCode returns a uniformly random 4-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

func digitCount(phone string) int {
	count := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// Issue creates a fresh pending record for phone and returns the code
// for delivery. Any prior unconsumed record for the same phone is
// overwritten, unless it was created under the resend cooldown.
func (s *Store) Issue(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if digitCount(phone) < minPhoneDigits {
		return "", ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if existing, ok := s.records[phone]; ok {
		if now.Sub(existing.createdAt) < resendCooldown {
			return "", ErrRateLimited
		}
	}

	code, err := s.codeFn()
	if err != nil {
		return "", err
	}

	s.records[phone] = &record{
		code:      code,
		createdAt: now,
		expiresAt: now.Add(codeTTL),
	}
	return code, nil
}

// Verify checks code against the pending record for phone. A match
// marks the record verified but leaves it in place; Consume removes it.
func (s *Store) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[phone]
	if !ok {
		return ErrNotFound
	}

	if s.clock.Now().After(rec.expiresAt) {
		delete(s.records, phone)
		return ErrExpired
	}

	rec.attempts++
	if rec.attempts > maxAttempts {
		delete(s.records, phone)
		return ErrTooManyAttempts
	}

	if rec.code != code {
		return &MismatchError{Remaining: maxAttempts - rec.attempts}
	}

	rec.verified = true
	return nil
}

// Consume checks the record for phone is verified and deletes it,
// enforcing single use. A missing or unverified record is the same
// authorization failure either way.
func (s *Store) Consume(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[phone]
	if !ok || !rec.verified {
		return ErrNotVerified
	}

	delete(s.records, phone)
	return nil
}

// Drop removes any pending record for phone, used when delivery of a
// freshly issued code fails.
func (s *Store) Drop(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
}

// Sweep deletes all expired records and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for phone, rec := range s.records {
		if now.After(rec.expiresAt) {
			delete(s.records, phone)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps expired records on a fixed interval until ctx is
// cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
