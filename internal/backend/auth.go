package backend

import (
	"context"
	"io"
	"net/http"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The backend does not log the user in here, the
// UI sends them to the login page afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, nil)
	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, nil)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/forgotpassword", "", body, nil)
	return err
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"password": password}
	_, err := c.do(ctx, http.MethodPut, "/api/auth/resetpassword/"+resetToken, "", body, nil)
	return err
}

func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword rotates the session: the backend issues a fresh token, the
// old one stops working.
func (c *Client) UpdatePassword(ctx context.Context, token, currentPassword, newPassword string) (string, error) {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	env, err := c.do(ctx, http.MethodPut, "/api/auth/updatepassword", token, body, nil)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

// UpdateDetails sends profile fields plus an optional photo as multipart form
// data.
func (c *Client) UpdateDetails(ctx context.Context, token string, fields map[string]string, photoName string, photo io.Reader) (*domain.User, error) {
	var user domain.User
	_, err := c.doMultipart(ctx, http.MethodPut, "/api/auth/updatedetails", token, fields, "photo", photoName, photo, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/auth/deleteaccount", token, nil, nil)
	return err
}
