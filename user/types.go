package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Provider bool      `json:"provider"`
	Avatar   *File     `json:"avatar,omitempty"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email is invalid")
	}
	return nil
}

// File is an uploaded image referenced by a user as avatar.
type File struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Path string    `json:"path"`
}

// URL renders the public address of the file under baseURL.
func (f File) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/files/" + f.Path
}
