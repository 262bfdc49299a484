// Package messaging exposes the users module on the broker.
// Handlers translate command payloads into commands/queries and format
// replies; they are the transport edge, nothing more.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/application/queries"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/token"
)

// Command subjects served by the users module.
const (
	SubjectSignup             = "users.signup"
	SubjectLogin              = "users.login"
	SubjectList               = "users.list"
	SubjectGet                = "users.get"
	SubjectChangeRole         = "users.changeRole"
	SubjectChangeStatus       = "users.changeStatus"
	SubjectActiveContributors = "users.activeContributors"
	SubjectTopContributors    = "users.topContributors"
)

// QueueGroup splits command load across scaled instances.
const QueueGroup = "user-service"

// Handler handles broker commands for the users module.
type Handler struct {
	signup             *commands.SignupHandler
	login              *commands.LoginHandler
	changeRole         *commands.ChangeRoleHandler
	changeStatus       *commands.ChangeStatusHandler
	getUser            *queries.GetUserHandler
	listUsers          *queries.ListUsersHandler
	activeContributors *queries.ActiveContributorsHandler
	topContributors    *queries.TopContributorsHandler
	logger             *slog.Logger
}

func NewHandler(
	signup *commands.SignupHandler,
	login *commands.LoginHandler,
	changeRole *commands.ChangeRoleHandler,
	changeStatus *commands.ChangeStatusHandler,
	getUser *queries.GetUserHandler,
	listUsers *queries.ListUsersHandler,
	activeContributors *queries.ActiveContributorsHandler,
	topContributors *queries.TopContributorsHandler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		signup:             signup,
		login:              login,
		changeRole:         changeRole,
		changeStatus:       changeStatus,
		getUser:            getUser,
		listUsers:          listUsers,
		activeContributors: activeContributors,
		topContributors:    topContributors,
		logger:             logger,
	}
}

// Register subscribes every user command subject on the connection.
func (h *Handler) Register(conn *broker.Conn) error {
	subjects := map[string]nats.MsgHandler{
		SubjectSignup:             h.handleSignup,
		SubjectLogin:              h.handleLogin,
		SubjectList:               h.handleList,
		SubjectGet:                h.handleGet,
		SubjectChangeRole:         h.handleChangeRole,
		SubjectChangeStatus:       h.handleChangeStatus,
		SubjectActiveContributors: h.handleActiveContributors,
		SubjectTopContributors:    h.handleTopContributors,
	}
	for subject, handler := range subjects {
		if _, err := conn.QueueSubscribe(subject, QueueGroup, handler); err != nil {
			return err
		}
	}
	return nil
}

// Request/Response DTOs

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *queries.UserDTO `json:"user"`
	AccessToken string           `json:"accessToken"`
}

type changeRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type changeStatusRequest struct {
	UserID     string     `json:"userId"`
	CallBackAt *time.Time `json:"callBackAt,omitempty"`
}

type getUserRequest struct {
	UserID string `json:"userId"`
}

type listUsersRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Handlers

func (h *Handler) handleSignup(msg *nats.Msg) {
	var req signupRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	result, err := h.signup.Handle(context.Background(), commands.SignupCommand{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, authResponse{User: queries.NewUserDTO(result.User), AccessToken: result.AccessToken})
}

func (h *Handler) handleLogin(msg *nats.Msg) {
	var req loginRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	result, err := h.login.Handle(context.Background(), commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, authResponse{User: queries.NewUserDTO(result.User), AccessToken: result.AccessToken})
}

func (h *Handler) handleChangeRole(msg *nats.Msg) {
	var req changeRoleRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	user, err := h.changeRole.Handle(context.Background(), commands.ChangeRoleCommand{
		UserID: req.UserID,
		Role:   req.Role,
	})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, queries.NewUserDTO(user))
}

func (h *Handler) handleChangeStatus(msg *nats.Msg) {
	var req changeStatusRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	cmd := commands.ChangeStatusCommand{UserID: req.UserID}
	if req.CallBackAt != nil {
		cmd.CallBackAt = *req.CallBackAt
	}

	user, err := h.changeStatus.Handle(context.Background(), cmd)
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, queries.NewUserDTO(user))
}

func (h *Handler) handleGet(msg *nats.Msg) {
	var req getUserRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondError(msg, broker.CodeValidation, err)
		return
	}

	user, err := h.getUser.Handle(context.Background(), queries.GetUserQuery{UserID: req.UserID})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, user)
}

func (h *Handler) handleList(msg *nats.Msg) {
	var req listUsersRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.respondError(msg, broker.CodeValidation, err)
			return
		}
	}

	users, err := h.listUsers.Handle(context.Background(), queries.ListUsersQuery{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, users)
}

func (h *Handler) handleActiveContributors(msg *nats.Msg) {
	users, err := h.activeContributors.Handle(context.Background())
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, users)
}

func (h *Handler) handleTopContributors(msg *nats.Msg) {
	users, err := h.topContributors.Handle(context.Background())
	if err != nil {
		h.respondError(msg, errorCode(err), err)
		return
	}
	h.respond(msg, users)
}

func (h *Handler) respond(msg *nats.Msg, v any) {
	if err := broker.Respond(msg, v); err != nil {
		h.logger.Error("failed to reply", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

func (h *Handler) respondError(msg *nats.Msg, code string, cause error) {
	if err := broker.RespondError(msg, code, cause); err != nil {
		h.logger.Error("failed to reply with error", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

// errorCode maps user-module failures onto reply codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return broker.CodeNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return broker.CodeInvalidCredentials
	case errors.Is(err, domain.ErrEmailExists):
		return broker.CodeDuplicateEmail
	case errors.Is(err, token.ErrConfigMissing):
		return broker.CodeConfiguration
	case errors.Is(err, domain.ErrPasswordRequired),
		errors.Is(err, domain.ErrUsernameRequired),
		errors.Is(err, domain.ErrUsernameLength),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrAlreadyOnDuty),
		errors.Is(err, domain.ErrNotOnDuty),
		errors.Is(err, types.ErrInvalidID):
		return broker.CodeValidation
	default:
		return broker.CodeInternal
	}
}
