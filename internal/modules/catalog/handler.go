package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicehub/internal/pkg/response"
	"servicehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	services := api.Group("/services")
	{
		services.GET("", h.Search)
		services.GET("/categories", h.Categories)
		services.GET("/popular", h.Popular)
		services.GET("/:id", h.GetByID)
	}
}

// Search lists active services with filtering, sorting and pagination.
// @Summary		Search services
// @Tags		Services
// @Param		category	query	string	false	"Category name fragment"
// @Param		minRating	query	number	false	"Minimum provider rating"
// @Param		latitude	query	number	false	"Origin latitude"
// @Param		longitude	query	number	false	"Origin longitude"
// @Param		maxDistance	query	number	false	"Radius in km"
// @Param		sortBy		query	string	false	"price | rating | distance | newest"
// @Success		200	{object}	SearchResult
// @Failure		400	{object}	map[string]interface{}
// @Router		/services [GET]
func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) Popular(c *gin.Context) {
	var q PopularQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	services, err := h.service.Popular(c.Request.Context(), q.Limit)
	if err != nil {
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "Service not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": svc})
}
