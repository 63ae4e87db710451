package http

import (
	"encoding/json"
	"net/http"

	"github.com/abc-staff/staff-backend-go/internal/domain/payrate"
	"github.com/abc-staff/staff-backend-go/internal/handler/http/response"
)

type PayRateHandler interface {
	GetCurrent(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type payRateHandlerImpl struct {
	payRateService payrate.PayRateService
}

func NewPayRateHandler(payRateService payrate.PayRateService) PayRateHandler {
	return &payRateHandlerImpl{
		payRateService: payRateService,
	}
}

// GetCurrent implements PayRateHandler.
func (h *payRateHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.payRateService.GetCurrent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements PayRateHandler.
func (h *payRateHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payrate.CreatePayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payRateService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay rate created", result)
}

// List implements PayRateHandler.
func (h *payRateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payRateService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
