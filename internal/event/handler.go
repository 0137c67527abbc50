package event

import (
	"encoding/json"
	"net/http"
	"strconv"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(filters ListFilters) ([]*Event, error)
	GetByID(id string) (*Event, error)
	Create(dto CreateEventDTO, createdBy string) (*Event, error)
	Update(id string, dto UpdateEventDTO) (*Event, error)
	Delete(id string) error
	Register(eventID string, dto RegisterDTO) (*Registration, error)
	Registrations(eventID string) (*RegistrationReport, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	}
	if s := r.URL.Query().Get("isActive"); s != "" {
		if active, err := strconv.ParseBool(s); err == nil {
			filters.IsActive = &active
		}
	}
	if s := r.URL.Query().Get("upcoming"); s != "" {
		if upcoming, err := strconv.ParseBool(s); err == nil {
			filters.Upcoming = upcoming
		}
	}

	events, err := h.Service.List(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	page, limit := transport.PageParams(r)
	pageItems, pagination, total := transport.Paginate(events, page, limit)
	h.WriteList(w, pageItems, len(pageItems), total, &pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(dto, app.UserIDFromContext(r.Context()))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusCreated, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, nil, "Event deleted")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Register: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	registration, err := h.Service.Register(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusCreated, registration)
}

func (h *Handler) Registrations(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Registrations(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, report)
}
