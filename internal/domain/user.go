package domain

import "time"

// User is either a password account (Username + PasswordHash) or a wallet
// account (EthAddress). The two are created by separate signup paths.
type User struct {
	ID           int64     `json:"id"`
	Username     *string   `json:"username,omitempty"`
	PasswordHash *string   `json:"-"`
	EthAddress   *string   `json:"eth_address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u.Username != nil && u.PasswordHash != nil && *u.PasswordHash != ""
}
