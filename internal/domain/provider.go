package domain

import "time"

// Provider is the business profile of a user offering services.
type Provider struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	UserID        int64     `json:"userId" gorm:"uniqueIndex;not null"`
	BusinessName  string    `json:"businessName" gorm:"size:255"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	IsAvailable   bool      `json:"isAvailable"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
