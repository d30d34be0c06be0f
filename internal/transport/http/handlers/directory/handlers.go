package directoryhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/directory"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
	"talenthub/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	manageUsers := middleware.RequireCapability(func(caps auth.Capabilities) bool { return caps.ManageUsers })

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListUsers)
		r.With(manageUsers).Post("/", h.handleCreateUser)
		r.Get("/{userID}", h.handleGetUser)
		r.With(manageUsers).Put("/{userID}", h.handleUpdateUser)
		r.Get("/{userID}/profile", h.handleGetProfile)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListTeams)
		r.With(manageUsers).Post("/", h.handleCreateTeam)
		r.Get("/{teamID}/members", h.handleTeamMembers)
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	users, err := h.Service.ListUsers(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email        string  `json:"email"`
		Password     string  `json:"password"`
		FirstName    string  `json:"firstName"`
		LastName     string  `json:"lastName"`
		Role         string  `json:"role"`
		CareerBandID *string `json:"careerBandId"`
		TeamID       *string `json:"teamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateUser(r.Context(), payload.Email, payload.Password, payload.FirstName, payload.LastName, payload.Role, payload.CareerBandID, payload.TeamID)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName    string  `json:"firstName"`
		LastName     string  `json:"lastName"`
		Role         string  `json:"role"`
		CareerBandID *string `json:"careerBandId"`
		TeamID       *string `json:"teamId"`
		Active       bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Service.UpdateUser(r.Context(), chi.URLParam(r, "userID"), payload.FirstName, payload.LastName, payload.Role, payload.CareerBandID, payload.TeamID, payload.Active)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, teams, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name         string  `json:"name"`
		LeaderUserID *string `json:"leaderUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Service.CreateTeam(r.Context(), payload.Name, payload.LeaderUserID)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.TeamMemberIDs(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, members, middleware.GetRequestID(r.Context()))
}
