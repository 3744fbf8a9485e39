package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomly/internal/shared/utils/response"
)

type Controller interface {
	GetAvailability(c *gin.Context)
	GetBlock(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetAvailability handles GET /availability?category=&start=
func (ctrl *controller) GetAvailability(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Room category is required", nil, nil)
		return
	}

	start, err := ParseInstant(c.Query("start"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid start instant", nil, err.Error())
		return
	}

	decision, err := ctrl.service.EvaluateTariffs(c.Request.Context(), category, start)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Availability evaluation failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Availability evaluated", decision, nil)
}

// GetBlock handles GET /availability/block?category=&at=
func (ctrl *controller) GetBlock(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Room category is required", nil, nil)
		return
	}

	at, err := ParseInstant(c.Query("at"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid instant", nil, err.Error())
		return
	}

	interval, err := ctrl.service.BlockAt(c.Request.Context(), category, at)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Block lookup failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Block lookup completed", BlockResponse{
		Category: category,
		At:       at,
		Blocked:  interval != nil,
		Interval: interval,
	}, nil)
}
