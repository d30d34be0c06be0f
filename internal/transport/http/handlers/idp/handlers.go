package idphandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/idp"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
)

type Handler struct {
	Service *idp.Service
}

func NewHandler(service *idp.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/idp", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/generate/{assessmentID}", h.handleGenerate)
		r.Get("/users/{userID}/plans", h.handleListPlans)
		r.Get("/plans/{planID}/activities", h.handleListActivities)
		r.Put("/plans/{planID}/activities/{activityID}", h.handleUpdateActivity)
	})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	planID, err := h.Service.Generate(r.Context(), actor, chi.URLParam(r, "assessmentID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"planId": planID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	plans, err := h.Service.ListUserPlans(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	activities, err := h.Service.ListActivities(r.Context(), actor, chi.URLParam(r, "planID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, activities, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	err := h.Service.UpdateActivityStatus(r.Context(), actor, chi.URLParam(r, "planID"), chi.URLParam(r, "activityID"), payload.Status)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}
