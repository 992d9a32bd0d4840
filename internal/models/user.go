package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

type User struct {
	ID        int64
	Email     string
	Password  string
	Role      UserRole
	CreatedAt time.Time
}
