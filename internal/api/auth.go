package api

import (
	"context"
	"net/http"

	"hr-tracker/internal/models"
)

type userData struct {
	User models.User `json:"user"`
}

// Login authenticates; the server sets the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var data userData
	body := map[string]string{"username": username, "password": password}
	if _, err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", body, userSchema, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout ends the server session and always drops local cookies.
func (c *Client) Logout(ctx context.Context) error {
	defer c.http.ResetCookies()
	_, err := c.doJSON(ctx, "logout", http.MethodPost, "/auth/logout", nil, "", nil)
	return err
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var data userData
	if _, err := c.doJSON(ctx, "get-profile", http.MethodGet, "/auth/profile", nil, userSchema, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// ChangePassword returns the server's confirmation message.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) (string, error) {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	resp, err := c.doJSON(ctx, "change-password", http.MethodPut, "/auth/change-password", body, "", nil)
	if err != nil {
		return "", err
	}
	return resp.message, nil
}
