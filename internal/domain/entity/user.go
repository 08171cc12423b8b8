package entity

import "time"

// User represents an account that can authenticate against the API.
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(255);not null" json:"email"`
	HashedPassword string    `gorm:"type:text;not null" json:"-"`
	Role           string    `gorm:"type:varchar(50);not null;index" json:"role"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleAdmin      = "admin"
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// AllRoles lists every role the system recognizes.
var AllRoles = []string{RoleAdmin, RoleStudent, RoleInstructor}

// IsValidRole reports whether role is one of the recognized role names.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
