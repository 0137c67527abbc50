package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clubware/club-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(filters ListFilters) ([]*User, error)
	GetByID(id string) (*User, error)
	Provision(dto CreateUserDTO) (*User, error)
	Update(id string, dto UpdateUserDTO) (*User, error)
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
		Role:       r.URL.Query().Get("role"),
		Department: r.URL.Query().Get("department"),
	}
	if s := r.URL.Query().Get("isActive"); s != "" {
		if active, err := strconv.ParseBool(s); err == nil {
			filters.IsActive = &active
		}
	}

	users, err := h.Service.List(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	page, limit := transport.PageParams(r)
	pageItems, pagination, total := transport.Paginate(users, page, limit)
	h.WriteList(w, pageItems, len(pageItems), total, &pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Provision(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusCreated, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, u)
}
