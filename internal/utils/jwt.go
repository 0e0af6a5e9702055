package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256" // SHA-256 hashing for tokens stored at rest
	"encoding/hex"  // hex encoding of digests
	"errors"        // sentinel error wrapping and matching
	"strconv"       // numeric subject encoding
	"time"          // expiry computation

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Claims is the identity payload embedded in every token this service
// issues.  Access and refresh tokens carry the same payload and differ only
// in signing secret and expiry, so holders must track which kind they have.
type Claims struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignedToken pairs a serialized JWT with its expiration time.  The Exp
// field lets handlers set matching cookie lifetimes without re-parsing.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrTokenExpired reports a token whose signature verified but whose expiry
// has passed.  ErrTokenInvalid covers malformed tokens and bad signatures.
// Callers branch on these to pick the right 401 variant.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// NewAccessToken signs a short-lived HS256 access token carrying the user's
// identity.  Fails when no signing secret is configured.
func NewAccessToken(secret string, c Claims, ttlMin int) (SignedToken, error) {
	return signToken(secret, c, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken signs a long-lived HS256 refresh token with the same
// payload as the access token but its own secret and expiry.
func NewRefreshToken(secret string, c Claims, ttlDays int) (SignedToken, error) {
	return signToken(secret, c, time.Duration(ttlDays)*24*time.Hour)
}

func signToken(secret string, c Claims, ttl time.Duration) (SignedToken, error) {
	if secret == "" {
		return SignedToken{}, errors.New("signing secret not configured")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(c.ID, 10),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses and validates a token against the secret for its kind.
// It returns ErrTokenExpired when the signature is valid but the expiry has
// passed, and ErrTokenInvalid for any other parse or signature failure.
func VerifyToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with a different algorithm family.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// HashToken returns the SHA-256 hash of a token as a hex string.  Only
// hashes are persisted on the user row, so a leaked database dump cannot be
// replayed as live credentials.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
