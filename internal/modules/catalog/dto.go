package catalog

import (
	"servicehub/internal/domain"
	"servicehub/internal/pkg/response"
)

// SearchQuery is bound from the query string of GET /services.
type SearchQuery struct {
	Category    string   `form:"category" binding:"omitempty,max=100"`
	MinRating   float64  `form:"minRating" binding:"gte=0,lte=5"`
	MinPrice    *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Latitude    *float64 `form:"latitude" binding:"required_with=Longitude,omitempty,latitude"`
	Longitude   *float64 `form:"longitude" binding:"required_with=Latitude,omitempty,longitude"`
	MaxDistance *float64 `form:"maxDistance" binding:"omitempty,gt=0"`
	SortBy      string   `form:"sortBy" binding:"omitempty,oneof=price rating distance newest"`
	Page        int      `form:"page,default=1" binding:"min=1"`
	Limit       int      `form:"limit,default=20" binding:"min=1,max=50"`
}

type PopularQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

type SearchResult struct {
	Services   []domain.Service    `json:"services"`
	Pagination response.Pagination `json:"pagination"`
}
