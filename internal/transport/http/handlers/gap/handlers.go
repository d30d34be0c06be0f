package gaphandler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/gap"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
)

type Handler struct {
	Service *gap.Service
}

func NewHandler(service *gap.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/gaps", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleReport)
		r.Get("/radar", h.handleRadar)
		r.Get("/export", h.handleExport)
	})
}

func scopeFromQuery(r *http.Request) gap.Scope {
	return gap.Scope{
		CycleID: r.URL.Query().Get("cycleId"),
		UserID:  r.URL.Query().Get("userId"),
		TeamID:  r.URL.Query().Get("teamId"),
	}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	report, err := h.Service.Report(r.Context(), actor, scopeFromQuery(r))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRadar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	groups, err := h.Service.Radar(r.Context(), actor, scopeFromQuery(r))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, groups, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	filePath, err := h.Service.ExportPDF(r.Context(), actor, scopeFromQuery(r), r.URL.Query().Get("title"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	defer func() { _ = os.Remove(filePath) }()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(filePath))
	http.ServeFile(w, r, filePath)
}
