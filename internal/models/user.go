package models

// User owns every budget, expense, recurring bill and notification.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	FullName string `json:"full_name"`
}
