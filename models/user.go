package models

import "time"

// User roles.
const (
	RoleWorker   = "worker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// User is a platform account: a worker (rigger), an employer, or an admin.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Trade        string    `bson:"trade,omitempty" json:"trade,omitempty"`
	Certs        []string  `bson:"certs,omitempty" json:"certs,omitempty"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
