package announcement

import (
	"encoding/json"
	"net/http"
	"strconv"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(filters ListFilters) ([]*Announcement, error)
	GetByID(id string) (*Announcement, error)
	Create(dto CreateAnnouncementDTO, createdBy string) (*Announcement, error)
	Update(id string, dto UpdateAnnouncementDTO) (*Announcement, error)
	Delete(id string) error
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
		Category:         r.URL.Query().Get("category"),
		TargetAudience:   r.URL.Query().Get("targetAudience"),
		TargetDepartment: r.URL.Query().Get("targetDepartment"),
	}
	if s := r.URL.Query().Get("isImportant"); s != "" {
		if important, err := strconv.ParseBool(s); err == nil {
			filters.IsImportant = &important
		}
	}

	announcements, err := h.Service.List(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteList(w, announcements, len(announcements), len(announcements), nil)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAnnouncementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(dto, app.UserIDFromContext(r.Context()))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusCreated, a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateAnnouncementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteData(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, nil, "Announcement deleted")
}
