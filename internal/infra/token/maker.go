package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretKeySize = 32

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload access token 內容
type Payload struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"user_id"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

type Maker interface {
	CreateToken(userID uint, name string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// JWTMaker HS256 簽章
type JWTMaker struct {
	secretKey []byte
}

func NewJWTMaker(secretKey string) (*JWTMaker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	return &JWTMaker{secretKey: []byte(secretKey)}, nil
}

func (m *JWTMaker) CreateToken(userID uint, name string, duration time.Duration) (string, *Payload, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", nil, err
	}
	now := time.Now()
	payload := &Payload{
		ID:     id,
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(m.secretKey)
	if err != nil {
		return "", nil, err
	}
	return token, payload, nil
}

func (m *JWTMaker) VerifyToken(token string) (*Payload, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	}

	payload := &Payload{}
	_, err := jwt.ParseWithClaims(token, payload, keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return payload, nil
}

var _ Maker = (*JWTMaker)(nil)
