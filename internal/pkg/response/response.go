package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/pkg/validator"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func ValidationErrors(c *gin.Context, statusCode int, errs []validator.FieldError) {
	c.JSON(statusCode, gin.H{"errors": errs})
}

// Abort writes an error body and stops the handler chain.
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// Internal records err for the request logger and answers with a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}
