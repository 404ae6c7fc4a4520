package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Validity is how long an issued code stays usable.
const Validity = 10 * time.Minute

// Channel tags the destination type a code was issued for.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// Record is one issued code, keyed by destination in the store.
type Record struct {
	Code     string    `json:"code"`
	Channel  Channel   `json:"channel"`
	IssuedAt time.Time `json:"issued_at"`
}

// ErrNotFound is returned when no record exists for a destination.
var ErrNotFound = errors.New("otp: record not found")

// Store persists OTP records with a TTL. Reissuing for the same
// destination overwrites the previous record (last write wins).
type Store interface {
	Save(ctx context.Context, destination string, rec Record, ttl time.Duration) error
	Get(ctx context.Context, destination string) (Record, error)
	Delete(ctx context.Context, destination string) error
}

// GenerateCode returns a cryptographically secure 6-digit numeric code.
func GenerateCode() (string, error) {
	max := big.NewInt(999999)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	// +1 avoids 000000, leading zeros keep six digits
	return fmt.Sprintf("%06d", n.Int64()+1), nil
}
