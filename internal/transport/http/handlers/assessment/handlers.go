package assessmenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/assessment"
	"talenthub/internal/domain/auth"
	"talenthub/internal/transport/http/api"
	"talenthub/internal/transport/http/middleware"
	"talenthub/internal/transport/http/shared"
)

type Handler struct {
	Service *assessment.Service
}

func NewHandler(service *assessment.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	manageCycles := middleware.RequireCapability(func(caps auth.Capabilities) bool { return caps.ManageCycles })

	r.Route("/cycles", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleListCycles)
		r.With(manageCycles).Post("/", h.handleCreateCycle)
		r.Get("/{cycleID}", h.handleGetCycle)
		r.With(manageCycles).Post("/{cycleID}/activate", h.handleActivateCycle)
		r.With(manageCycles).Post("/{cycleID}/close", h.handleCloseCycle)
		r.With(manageCycles).Post("/{cycleID}/remind", h.handleRemindPending)
		r.With(manageCycles).Delete("/{cycleID}", h.handleDeleteCycle)
		r.Get("/{cycleID}/assessments", h.handleListCycleAssessments)
	})

	r.Route("/assessments", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/mine", h.handleListMine)
		r.Get("/{assessmentID}", h.handleGetAssessment)
		r.Post("/{assessmentID}/self", h.handleSubmitSelf)
		r.Post("/{assessmentID}/leader", h.handleSubmitLeader)
		r.Post("/{assessmentID}/finalize", h.handleFinalize)
	})
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Service.ListCycles(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var payload struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", middleware.GetRequestID(r.Context()))
		return
	}
	endDate, err := shared.ParseDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), actor, payload.Name, startDate, endDate)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.Service.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivateCycle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	summary, err := h.Service.Activate(r.Context(), actor, chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	if err := h.Service.Close(r.Context(), actor, chi.URLParam(r, "cycleID")); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": assessment.CycleStatusCompleted}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemindPending(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	summary, err := h.Service.RemindPending(r.Context(), actor, chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	if err := h.Service.DeleteCycle(r.Context(), actor, chi.URLParam(r, "cycleID")); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCycleAssessments(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	status := r.URL.Query().Get("status")
	assessments, err := h.Service.ListCycleAssessments(r.Context(), actor, chi.URLParam(r, "cycleID"), status)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assessments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	assessments, err := h.Service.ListMyAssessments(r.Context(), actor)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assessments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	view, err := h.Service.GetAssessmentView(r.Context(), actor, chi.URLParam(r, "assessmentID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitSelf(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var payload struct {
		Scores []assessment.ScoreEntry `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.SubmitSelf(r.Context(), actor, chi.URLParam(r, "assessmentID"), payload.Scores); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": assessment.StatusLeaderAssessing}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitLeader(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var payload struct {
		Scores []assessment.ScoreEntry `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.SubmitLeader(r.Context(), actor, chi.URLParam(r, "assessmentID"), payload.Scores); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": assessment.StatusDiscussion}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var payload struct {
		Scores   []assessment.FinalEntry `json:"scores"`
		Feedback string                  `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Finalize(r.Context(), actor, chi.URLParam(r, "assessmentID"), payload.Scores, payload.Feedback); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": assessment.StatusDone}, middleware.GetRequestID(r.Context()))
}
