// Package auth issues and validates bearer tokens for event stream subscribers
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/blaaiz/blaaiz-go/internal/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrNameRequired = errors.New("subscriber name is required")
)

// Subscriber identifies the holder of a stream token
type Subscriber struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service signs stream tokens with HS256
type Service struct {
	config *config.StreamConfig
	now    func() time.Time
}

// New creates a new auth service
func New(cfg *config.StreamConfig) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// IssueToken creates a signed token for a named subscriber
func (s *Service) IssueToken(name string) (string, *Subscriber, error) {
	if name == "" {
		return "", nil, ErrNameRequired
	}

	now := s.now().UTC().Truncate(time.Second)
	subscriber := &Subscriber{
		ID:        uuid.New().String(),
		Name:      name,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"subscriber_id": subscriber.ID,
		"name":          subscriber.Name,
		"exp":           subscriber.ExpiresAt.Unix(),
		"iat":           now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, subscriber, nil
}

// ValidateToken checks the signature and expiry and returns the subscriber
func (s *Service) ValidateToken(tokenString string) (*Subscriber, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	subscriberID, ok := claims["subscriber_id"].(string)
	if !ok || subscriberID == "" {
		return nil, ErrTokenInvalid
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}
	name, _ := claims["name"].(string)

	subscriber := &Subscriber{ID: subscriberID, Name: name, ExpiresAt: exp.Time.UTC()}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		subscriber.IssuedAt = iat.Time.UTC()
	}

	return subscriber, nil
}
