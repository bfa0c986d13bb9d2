package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleReader Role = "reader"
)

// ParseRole 把 token 里的角色字符串收敛成已知角色；未知值返回 false
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, true
	case "", "user", string(RoleReader):
		return RoleReader, true
	}
	return "", false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
