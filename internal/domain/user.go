package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleProvider UserRole = "PROVIDER"
	RoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email,omitempty" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"firstName" gorm:"size:100"`
	LastName     string    `json:"lastName" gorm:"size:100"`
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	Role         UserRole  `json:"role" gorm:"size:16;not null"`
	Address      string    `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Provider *Provider `json:"provider,omitempty" gorm:"foreignKey:UserID"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (u *User) HasCoordinates() bool {
	return u != nil && u.Latitude != nil && u.Longitude != nil
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
