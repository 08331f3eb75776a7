package auth

import (
	"context"
	"errors"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

var (
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrEmailInUse        = errors.New("email already registered")
	ErrAccountNotFound   = errors.New("account not found")
)

// Identity is the verified subject resolved from a bearer credential.
type Identity struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// Gateway wraps every call this service makes to the identity provider.
// VerifyCredential and GetAccount are pure reads; the rest mutate provider
// state and must not be retried blindly.
type Gateway interface {
	VerifyCredential(ctx context.Context, token string) (*Identity, error)
	CreateAccount(ctx context.Context, email, password string) (*domain.Account, error)
	LookupAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	IssueSessionToken(ctx context.Context, uid string) (string, error)
	ExchangeForSessionCredential(ctx context.Context, sessionToken string) (string, error)
	RevokeAllSessions(ctx context.Context, uid string) error
	GetAccount(ctx context.Context, uid string) (*domain.Account, error)
}
