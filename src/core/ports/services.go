package ports

import "diarybook/src/core/domain"

// TokenVerifier turns a bearer credential into an Identity.
// It returns domain.ErrTokenExpired or domain.ErrInvalidToken on failure and
// never touches storage.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
