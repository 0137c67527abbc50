package application

import (
	"encoding/json"
	"net/http"

	"github.com/clubware/club-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Submit(dto SubmitApplicationDTO) (*Application, error)
	List(status string) ([]*Application, error)
	GetByID(id string) (*Application, error)
	UpdateStatus(id string, dto UpdateStatusDTO) (*Application, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto SubmitApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Submit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	application, err := h.Service.Submit(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, SubmitReceipt{
		ID:        application.ID,
		Email:     application.Email,
		Status:    application.Status,
		CreatedAt: application.CreatedAt,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	applications, err := h.Service.List(r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	page, limit := transport.PageParams(r)
	pageItems, pagination, total := transport.Paginate(applications, page, limit)
	h.WriteList(w, pageItems, len(pageItems), total, &pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	application, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, application)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	application, err := h.Service.UpdateStatus(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, application, "Application status updated")
}
