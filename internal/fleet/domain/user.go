package domain

import (
	"fmt"
	"strings"
)

// Role começa em 1: o valor zero não concede papel algum.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleDriver
	RolePassenger
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleDriver:
		return "Driver"
	default:
		return "Passenger"
	}
}

// ParseRole não diferencia maiúsculas; qualquer valor desconhecido vira Passenger.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "driver":
		return RoleDriver
	default:
		return RolePassenger
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

type User struct {
	Username string `json:"username" validate:"required,excludesall=0x2C\r\n"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

func (u User) Key() string {
	return u.Username
}

func (u User) String() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.Role)
}
