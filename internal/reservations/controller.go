package reservations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomly/internal/shared/utils/response"
)

type Controller interface {
	CreateReservation(c *gin.Context)
	GetReservation(c *gin.Context)
	ListReservations(c *gin.Context)
	CancelReservation(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			response.RespondJSON(c, "error", http.StatusConflict, "Reservation conflicts with existing occupancy", nil, nil)
		case errors.Is(err, ErrInvalidInterval):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create reservation", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Reservation created successfully", ToReservationResponse(reservation), nil)
}

func (ctrl *controller) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation retrieved successfully", ToReservationResponse(reservation), nil)
}

func (ctrl *controller) ListReservations(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	reservations, totalCount, err := ctrl.service.ListReservations(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list reservations", nil, nil)
		return
	}

	items := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, ToReservationResponse(&reservations[i]))
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservations retrieved successfully", PaginatedReservations{
		Reservations: items,
		TotalCount:   totalCount,
		Page:         query.Page,
		Limit:        query.Limit,
	}, nil)
}

func (ctrl *controller) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	if err := ctrl.service.CancelReservation(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation cancelled successfully", nil, nil)
}
