package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session ties an opaque storefront token to a cart and the caller's
// backend bearer token.
type Session struct {
	CartID string
	Bearer string
}

// Service issues and resolves storefront session tokens. Tokens are opaque
// and held in memory; a token that expires simply orphans its cart.
type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New() *Service {
	return &Service{
		tokens: newTokenManager(),
		ttl:    24 * time.Hour,
	}
}

// Issue mints a session token for a fresh cart. The bearer is the caller's
// backend credential, forwarded on every backend call made for this session.
func (s *Service) Issue(ctx context.Context, bearer string) (token, cartID string, err error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}
	cartID = id.String()
	token, err = s.tokens.Issue(cartID, bearer, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, cartID, nil
}

// Lookup resolves a token to its session, or ErrInvalidToken.
func (s *Service) Lookup(ctx context.Context, token string) (*Session, error) {
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Session{CartID: meta.CartID, Bearer: meta.Bearer}, nil
}

// TTLSeconds reports the session lifetime advertised to clients.
func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
