// Package commands contains write use cases for the users module.
package commands

import (
	"context"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/modules/notifications"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

// TokenIssuer issues session tokens bound to a user identity.
// Implemented by infrastructure/token.
type TokenIssuer interface {
	Issue(userID types.UserID, email string) (string, error)
}

// AuthResult is what signup and login hand back to the gateway:
// the user (credential never included) plus a session token.
type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// SignupCommand represents the intent to register a new user.
type SignupCommand struct {
	Username string
	Email    string
	Role     string
	Password string
}

// SignupHandler handles the SignupCommand.
type SignupHandler struct {
	repo       domain.UserRepository
	tokens     TokenIssuer
	dispatcher notifications.Dispatcher
}

func NewSignupHandler(repo domain.UserRepository, tokens TokenIssuer, dispatcher notifications.Dispatcher) *SignupHandler {
	return &SignupHandler{
		repo:       repo,
		tokens:     tokens,
		dispatcher: dispatcher,
	}
}

// Handle executes the signup use case.
func (h *SignupHandler) Handle(ctx context.Context, cmd SignupCommand) (*AuthResult, error) {
	// Validate and create value objects
	username, err := domain.NewUsername(cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}

	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	credential, err := domain.NewCredential(cmd.Password)
	if err != nil {
		return nil, err
	}

	// Check for existing email
	exists, err := h.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	// Create the user aggregate
	user, err := domain.NewUser(username, email, domain.Role(cmd.Role), credential)
	if err != nil {
		return nil, err
	}

	// Persist the user
	if err := h.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	accessToken, err := h.tokens.Issue(user.ID(), user.Email().String())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	// The new account waits for an admin to approve or refuse it.
	h.dispatcher.Emit(ctx, notifications.TopicAdmins, notifications.Notification{
		Title:       "New User",
		Description: "A new user has signed up, please accept or refuse the request",
	})

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}
