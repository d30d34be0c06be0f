package competencyhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/competency"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
)

type Handler struct {
	Service *competency.Service
}

func NewHandler(service *competency.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	editMatrix := middleware.RequireCapability(func(caps auth.Capabilities) bool { return caps.EditMatrix })

	r.Route("/competencies", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListCompetencies)
		r.With(editMatrix).Post("/", h.handleCreateCompetency)
		r.Get("/groups", h.handleListGroups)
		r.With(editMatrix).Post("/groups", h.handleCreateGroup)
	})

	r.Route("/career-bands", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListCareerBands)
		r.Get("/{bandID}/matrix", h.handleMatrixForBand)
		r.With(editMatrix).Put("/{bandID}/matrix/{competencyID}", h.handleSetRequirement)
		r.With(editMatrix).Delete("/{bandID}/matrix/{competencyID}", h.handleDeleteRequirement)
	})
}

func (h *Handler) handleListCompetencies(w http.ResponseWriter, r *http.Request) {
	competencies, err := h.Service.ListCompetencies(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, competencies, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCompetency(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		GroupID     string `json:"groupId"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateCompetency(r.Context(), payload.GroupID, payload.Name, payload.Description)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.ListGroups(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, groups, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateGroup(r.Context(), payload.Name)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCareerBands(w http.ResponseWriter, r *http.Request) {
	bands, err := h.Service.ListCareerBands(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, bands, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMatrixForBand(w http.ResponseWriter, r *http.Request) {
	requirements, err := h.Service.MatrixForBand(r.Context(), chi.URLParam(r, "bandID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requirements, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetRequirement(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RequiredLevel int `json:"requiredLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Service.SetRequirement(r.Context(), chi.URLParam(r, "bandID"), chi.URLParam(r, "competencyID"), payload.RequiredLevel)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteRequirement(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteRequirement(r.Context(), chi.URLParam(r, "bandID"), chi.URLParam(r, "competencyID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
