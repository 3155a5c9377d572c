package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goCred/store"
)

// secretSize is the raw entropy of a per-user signing secret. 64 bytes keeps
// the HS256 key at the full SHA-256 block width.
const secretSize = 64

var (
	// ErrMalformed is returned when a token cannot be decoded at all.
	ErrMalformed = errors.New("malformed token")
	// ErrBadSignature is returned when cryptographic verification fails.
	ErrBadSignature = errors.New("token signature invalid")
	// ErrSubjectMismatch is returned when a token names a different subject
	// than the record it is verified against.
	ErrSubjectMismatch = errors.New("token subject mismatch")
	// ErrVersionMismatch is returned when the embedded version no longer
	// matches the record's counter. This is the revocation mechanism.
	ErrVersionMismatch = errors.New("token version mismatch")
	// ErrExpired is returned when the token is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrSecretCorrupt is returned when a record's stored secret cannot be
	// decoded. It signals stored-data corruption, not a client fault.
	ErrSecretCorrupt = errors.New("signing secret corrupt")
)

// Config holds token issuance and verification parameters.
type Config struct {
	Issuer string
	Leeway time.Duration
}

// Manager signs and verifies per-user tokens. Safe for concurrent use.
type Manager struct {
	config Config
}

// Claims is the decoded, verified payload of a bearer token. It is never
// persisted.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Version   uint32
}

type tokenClaims struct {
	Version uint32 `json:"ver"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Manager{config: cfg}, nil
}

// Issue signs a token for record with the record's current secret and
// version. Tokens issued before and after a secret rotation are mutually
// non-interchangeable.
func (m *Manager) Issue(record *store.UserRecord, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("invalid token ttl")
	}

	secret, err := decodeSecret(record.JWTSecret)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := tokenClaims{
		Version: record.JWTVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   record.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    m.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ExtractSubjectUnverified decodes the claims payload without verifying the
// signature and returns the subject. Its only legitimate use is deciding
// which user record to load for [Manager.Verify].
func (m *Manager) ExtractSubjectUnverified(tokenStr string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := &tokenClaims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrMalformed)
	}

	return claims.Subject, nil
}

// Verify decodes tokenStr and validates it against record.
//
// Checks run in a fixed order: signature, subject, version, expiry. A token
// that fails an earlier check never reveals the outcome of a later one.
func (m *Manager) Verify(tokenStr string, record *store.UserRecord) (*Claims, error) {
	secret, err := decodeSecret(record.JWTSecret)
	if err != nil {
		return nil, err
	}

	// Claims validation is disabled so expiry is checked explicitly below,
	// after the signature and version checks.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(tokenStr, &tokenClaims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil, ErrBadSignature
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, ErrMalformed
	}
	if claims.Subject != record.Username {
		return nil, ErrSubjectMismatch
	}
	if m.config.Issuer != "" && claims.Issuer != m.config.Issuer {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrMalformed)
	}

	if claims.Version != record.JWTVersion {
		return nil, ErrVersionMismatch
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrMalformed)
	}
	if time.Now().After(claims.ExpiresAt.Time.Add(m.config.Leeway)) {
		return nil, ErrExpired
	}

	out := &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Version:   claims.Version,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

// NewSecret returns a fresh base64-encoded signing secret with 512 bits of
// entropy.
func NewSecret() (string, error) {
	raw := make([]byte, secretSize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// RotateSecret replaces the record's signing secret and increments its
// version by exactly 1, invalidating every previously issued token the
// moment the record is persisted. The caller owns persistence.
func RotateSecret(record *store.UserRecord) error {
	secret, err := NewSecret()
	if err != nil {
		return err
	}

	record.JWTSecret = secret
	record.JWTVersion++

	return nil
}

func decodeSecret(encoded string) ([]byte, error) {
	secret, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSecretCorrupt, err)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrSecretCorrupt)
	}
	return secret, nil
}
