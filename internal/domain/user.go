package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Username length bounds in characters, applied after trimming surrounding
// whitespace.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
)

// User represents a registered user of the task service.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`

	// Password holds the plaintext credential temporarily during
	// registration. It is hashed before storage and never serialized.
	Password string `json:"-"`

	// HashedPassword is the bcrypt hash persisted for the user.
	// Never exposed in JSON.
	HashedPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// The username is trimmed before validation. The caller is responsible for
// hashing the password before the user is stored.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	length := utf8.RuneCountInString(strings.TrimSpace(u.Username))
	if length < UsernameMinLength {
		return ErrUsernameTooShort
	}
	if length > UsernameMaxLength {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		// Plaintext present: enforce length bounds. The upper bound is
		// bcrypt's practical input limit.
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}
