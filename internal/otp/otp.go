// server/internal/otp/otp.go
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ErrNotFound is returned when no code is stored for a phone number, either
// because none was issued or because it expired.
var ErrNotFound = errors.New("otp: code not found")

// Store keeps one pending code per phone number with a TTL.
type Store interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// Issuer generates and verifies one-time codes.
type Issuer struct {
	store Store
	ttl   time.Duration
}

func NewIssuer(store Store, ttl time.Duration) *Issuer {
	return &Issuer{store: store, ttl: ttl}
}

// Issue generates a fresh 6-digit code for phone, replacing any pending one,
// and returns it so the caller can hand it to the delivery channel.
func (i *Issuer) Issue(ctx context.Context, phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := i.store.Save(ctx, phone, code, i.ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks code against the pending one for phone. A successful
// verification consumes the code; a failed one leaves it pending so the user
// can retry until it expires.
func (i *Issuer) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := i.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := i.store.Delete(ctx, phone); err != nil {
		return false, err
	}
	return true, nil
}
