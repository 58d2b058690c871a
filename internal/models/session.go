package models

import "time"

// Keys persisted in client storage.
const (
	StorageKeyUser      = "user"
	StorageKeyLoginTime = "loginTime"
	// StorageKeyCookies holds the API session cookies between CLI runs.
	StorageKeyCookies = "cookies"
)

// User is the cached profile of the logged-in HR user.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// DisplayName prefers the full name, then the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// SessionState is the client's view of authentication. LoggedIn implies
// User is set and LoginAt is within the session lifetime.
type SessionState struct {
	LoggedIn bool      `json:"loggedIn"`
	User     *User     `json:"user,omitempty"`
	LoginAt  time.Time `json:"loginAt,omitempty"`
}
