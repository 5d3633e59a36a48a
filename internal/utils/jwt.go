package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel error for rejected tokens
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are short‑lived and encoded
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Identity is the decoded payload of a valid access token: the user's id
// (sub claim) and email.  The server keeps no session state, so this pair
// is everything a protected handler knows about the caller.
type Identity struct {
    UserID uint64 // subject claim
    Email  string // email claim
}

// ErrInvalidToken is returned by ParseAccessToken for missing, malformed,
// expired or wrongly signed tokens.  Callers never learn which of those it
// was.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's email, and a TTL in minutes.  The
// JWT includes the subject (sub), email, expiration (exp) and issued at
// (iat) claims.
func NewAccessToken(secret string, userID uint64, email string, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   userID,
        "email": email,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates a raw token string against the secret and
// extracts the caller's identity.  Only HMAC-signed tokens are accepted;
// anything else, including expired tokens, comes back as ErrInvalidToken.
// Extra parser options are forwarded to the jwt library (tests use
// jwt.WithTimeFunc to pin the clock).
func ParseAccessToken(secret, raw string, opts ...jwt.ParserOption) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    }, opts...)
    if err != nil || !tok.Valid {
        return Identity{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrInvalidToken
    }
    sub, ok := claims["sub"].(float64) // numeric claims decode as float64
    if !ok {
        return Identity{}, ErrInvalidToken
    }
    email, _ := claims["email"].(string)
    return Identity{UserID: uint64(sub), Email: email}, nil
}
