package domain

import "time"

type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Icon        string `json:"icon,omitempty" gorm:"size:64"`
	IsActive    bool   `json:"isActive"`
}

// Service is a bookable offering of a provider. Duration is in minutes.
type Service struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ProviderID  int64     `json:"providerId" gorm:"index;not null"`
	CategoryID  int64     `json:"categoryId" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	BasePrice   float64   `json:"basePrice"`
	Duration    int       `json:"duration"`
	IsActive    bool      `json:"isActive" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Provider *Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// Distance in kilometres from the search origin, never persisted.
	Distance *float64 `json:"distance,omitempty" gorm:"-"`
}

// Coordinates returns the location of the provider's user, if known.
func (s *Service) Coordinates() (lat, lng float64, ok bool) {
	if s.Provider == nil || !s.Provider.User.HasCoordinates() {
		return 0, 0, false
	}
	return *s.Provider.User.Latitude, *s.Provider.User.Longitude, true
}
