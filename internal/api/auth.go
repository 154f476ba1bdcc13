package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	"github.com/kaushalNeupane10/CloudBite/pkg/validator"
)

// LoginInput holds the credentials for obtaining a token pair.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput holds the fields for creating a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Login obtains a token pair from POST /token/. The request is never sent
// with a bearer header, even when a stale token is stored.
func (c *Client) Login(ctx context.Context, input LoginInput) (domain.Session, error) {
	if err := validator.Validate(input); err != nil {
		return domain.Session{}, fmt.Errorf("validate login input: %w", err)
	}

	var session domain.Session
	if err := c.do(ctx, http.MethodPost, pathToken, input, &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Register creates a new account via POST /register/.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	if err := validator.Validate(input); err != nil {
		return fmt.Errorf("validate register input: %w", err)
	}

	return c.do(ctx, http.MethodPost, pathRegister, input, nil)
}

// Me returns the profile of the currently authenticated user. A failure here
// means no active session.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, pathMe, nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
