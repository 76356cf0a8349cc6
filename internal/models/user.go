package models

import "fmt"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	case "ROLE_USER":
		return RoleUser, nil
	case "ROLE_ADMIN":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
