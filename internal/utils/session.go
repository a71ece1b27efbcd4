package utils // package utils provides helpers for signing and verifying session tokens

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"
)

// ErrInvalidSession is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken is a signed session cookie value and its expiry.
type SessionToken struct {
    Token string
    Exp   time.Time
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string { return uuid.NewString() }

// NewSessionToken signs an HS256 JWT whose subject is sessionID.
func NewSessionToken(secret, sessionID string, ttl time.Duration) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.RegisteredClaims{
        Subject:   sessionID,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(exp),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies raw and returns the session id it carries.
func ParseSessionToken(secret, raw string) (string, error) {
    var claims jwt.RegisteredClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return "", ErrInvalidSession
    }
    if _, err := uuid.Parse(claims.Subject); err != nil {
        return "", ErrInvalidSession
    }
    return claims.Subject, nil
}
