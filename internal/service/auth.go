package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Junaid083/SprintSync/internal/apperr"
	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/token"
)

// DefaultBcryptCost matches the original seed data.
const DefaultBcryptCost = 12

type AuthService struct {
	accounts repo.AccountRepository
	tokens   *token.Service
}

func NewAuthService(accounts repo.AccountRepository, tokens *token.Service) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

// Login authenticates an active account by email and password, records the
// login time and issues a session credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Account, string, error) {
	if email == "" || password == "" {
		return model.Account{}, "", apperr.Validation("Please provide both email and password", nil)
	}
	if !strings.Contains(email, "@") {
		return model.Account{}, "", apperr.Validation("Please provide a valid email address", nil)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Account{}, "", apperr.NotFound("No account found with this email address")
		}
		return model.Account{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.SecretDigest), []byte(password)) != nil {
		return model.Account{}, "", apperr.Auth("Incorrect password. Please try again.")
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		return model.Account{}, "", err
	}

	signed, _, err := s.tokens.Issue(account.ID, account.Email, account.IsAdmin)
	if err != nil {
		return model.Account{}, "", err
	}
	return account, signed, nil
}

// Me re-checks mutable account state; a credential issued before
// deactivation stops working here even though the token itself is valid.
func (s *AuthService) Me(ctx context.Context, claims token.Claims) (model.Account, error) {
	account, err := s.accounts.GetActive(ctx, claims.AccountID)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.Account{}, apperr.NotFound("User account not found or has been deactivated")
	}
	return account, err
}

func (s *AuthService) Users(ctx context.Context) ([]model.AccountRef, error) {
	return s.accounts.List(ctx)
}

// HashSecret is the explicit hash-before-persist step for account writes.
// The Account entity itself never hashes.
func HashSecret(secret string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}
