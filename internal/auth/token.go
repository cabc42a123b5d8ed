package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind classifies a credential failure.
type Kind int

const (
	KindMissing Kind = iota
	KindExpired
	KindInvalid
	KindInternal
)

// Error is a credential verification failure carrying the message returned
// to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Identity is the authenticated user context derived from a verified token.
// Handlers receive it explicitly through the request context; no other
// component may fabricate one.
type Identity struct {
	UserID string
}

// Verifier signs and verifies bearer tokens with a shared HMAC secret.
// Verification is a pure function of the header, the secret and the clock.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Sign issues an HS512 token whose subject is userID, expiring after ttl.
func (v *Verifier) Sign(userID string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(v.secret)
}

// VerifyHeader validates a raw Authorization header value and returns the
// identity embedded in the token.
func (v *Verifier) VerifyHeader(header string) (Identity, error) {
	if header == "" {
		return Identity{}, &Error{Kind: KindMissing, Message: "Authorization header missing"}
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return Identity{}, &Error{Kind: KindMissing, Message: "Token missing in Authorization header"}
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, v.keyFunc, jwt.WithTimeFunc(v.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, &Error{Kind: KindExpired, Message: "Token expired"}
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable),
			errors.Is(err, jwt.ErrTokenNotValidYet):
			return Identity{}, &Error{Kind: KindInvalid, Message: "Invalid token"}
		default:
			return Identity{}, &Error{Kind: KindInternal, Message: "Internal server error"}
		}
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, &Error{Kind: KindInvalid, Message: "Invalid token"}
	}

	return Identity{UserID: claims.Subject}, nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
		return nil, errors.New("only HS512 is allowed")
	}
	return v.secret, nil
}
