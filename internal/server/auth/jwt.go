// Package auth implements the bearer-token codec: compact HS256 tokens
// carrying the user id, username, and expiry. There is no revocation or
// refresh; expiry is the only invalidation path.
package auth

import (
	"strconv"
	"time"

	"github.com/chemhub/chemforum/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token payload: registered claims (sub, exp) plus the
// username so callers can display it without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Identity is the decoded result of a verified token.
type Identity struct {
	UserID   int64
	Username string
}

// Codec signs and verifies bearer tokens with a process-wide secret.
// It is immutable and safe for concurrent use.
type Codec struct {
	secret   []byte
	validity time.Duration
}

func NewCodec(secret []byte, validity time.Duration) *Codec {
	return &Codec{secret: secret, validity: validity}
}

// Issue returns a signed token for the given user, expiring after the
// codec's validity duration.
func (c *Codec) Issue(userID int64, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.validity)),
		},
		Username: username,
	})

	return token.SignedString(c.secret)
}

// Verify parses and validates a token. Any failure (malformed string,
// wrong signature, expired) returns common.ErrInvalidToken; callers must
// not be able to tell a forged token from an expired one.
func (c *Codec) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: userID, Username: claims.Username}, nil
}
