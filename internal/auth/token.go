package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity decoded from a verified bearer token.
type Claims struct {
	UserID   string
	Nickname string
}

// TokenService issues and verifies the HS256 bearer tokens handed out by
// the login endpoint and required at websocket handshake.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "quickchat-service",
	}
}

// Issue signs a time-boxed token for the given identity.
func (t *TokenService) Issue(userID, nickname string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"nickname": nickname,
		"exp":      time.Now().Add(t.ttl).Unix(),
		"iss":      t.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// Anything wrong with the token comes back as ErrInvalidToken; the caller
// never admits the connection.
func (t *TokenService) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, _ := mapClaims["sub"].(string)
	nickname, _ := mapClaims["nickname"].(string)
	if userID == "" || nickname == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, Nickname: nickname}, nil
}
