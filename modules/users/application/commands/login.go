package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// LoginCommand represents a credential check for an existing user.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginHandler handles the LoginCommand.
type LoginHandler struct {
	repo   domain.UserRepository
	tokens TokenIssuer
}

func NewLoginHandler(repo domain.UserRepository, tokens TokenIssuer) *LoginHandler {
	return &LoginHandler{
		repo:   repo,
		tokens: tokens,
	}
}

// Handle executes the login use case.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	// FindByEmail loads the credential, which routine lookups leave out.
	user, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if !user.VerifyPassword(cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := h.tokens.Issue(user.ID(), user.Email().String())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}
