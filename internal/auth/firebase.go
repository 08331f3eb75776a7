package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

// FirebaseGateway implements Gateway against Firebase Auth. Session
// credentials are minted in two steps: a custom token signed locally by the
// Admin SDK, then an ID token obtained from the provider's token-exchange
// endpoint.
type FirebaseGateway struct {
	client    *fbauth.Client
	exchanger *TokenExchanger
}

func NewFirebaseGateway(client *fbauth.Client, exchanger *TokenExchanger) *FirebaseGateway {
	return &FirebaseGateway{client: client, exchanger: exchanger}
}

func (g *FirebaseGateway) VerifyCredential(ctx context.Context, token string) (*Identity, error) {
	decoded, err := g.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	email, _ := decoded.Claims["email"].(string)
	return &Identity{
		UID:    decoded.UID,
		Email:  email,
		Claims: decoded.Claims,
	}, nil
}

func (g *FirebaseGateway) CreateAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	record, err := g.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &domain.Account{UID: record.UID, Email: record.Email}, nil
}

func (g *FirebaseGateway) LookupAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	record, err := g.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &domain.Account{UID: record.UID, Email: record.Email}, nil
}

func (g *FirebaseGateway) IssueSessionToken(ctx context.Context, uid string) (string, error) {
	token, err := g.client.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("mint custom token: %w", err)
	}
	return token, nil
}

func (g *FirebaseGateway) ExchangeForSessionCredential(ctx context.Context, sessionToken string) (string, error) {
	return g.exchanger.Exchange(ctx, sessionToken)
}

func (g *FirebaseGateway) RevokeAllSessions(ctx context.Context, uid string) error {
	if err := g.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (g *FirebaseGateway) GetAccount(ctx context.Context, uid string) (*domain.Account, error) {
	record, err := g.client.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domain.Account{UID: record.UID, Email: record.Email}, nil
}

var _ Gateway = (*FirebaseGateway)(nil)
