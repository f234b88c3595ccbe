package model

import "time"

// User is an account provisioned by the user service. This service never
// creates or deletes users; it only reads them to resolve payment identity.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"unique;not null;size:100" json:"username"`
	Email     *string   `gorm:"unique;size:255" json:"email,omitempty"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
