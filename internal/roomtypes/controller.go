package roomtypes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomly/internal/shared/utils/response"
)

type Controller interface {
	GetConfigs(c *gin.Context)
	UpsertConfig(c *gin.Context)
	DeleteConfig(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetConfigs(c *gin.Context) {
	configs, err := ctrl.service.GetAllConfigs(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load room type configurations", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type configurations retrieved", configs, nil)
}

func (ctrl *controller) UpsertConfig(c *gin.Context) {
	var req UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	config, err := ctrl.service.UpsertConfig(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type configuration saved", config, nil)
}

func (ctrl *controller) DeleteConfig(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Category is required", nil, nil)
		return
	}

	if err := ctrl.service.DeleteConfig(c.Request.Context(), category); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type configuration deleted", nil, nil)
}
