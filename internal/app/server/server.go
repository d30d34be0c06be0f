package server

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"talenthub/internal/domain/assessment"
	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/competency"
	"talenthub/internal/domain/directory"
	"talenthub/internal/domain/gap"
	"talenthub/internal/domain/idp"
	"talenthub/internal/domain/notifications"
	"talenthub/internal/platform/config"
	"talenthub/internal/platform/db"
	"talenthub/internal/platform/email"
	"talenthub/internal/platform/metrics"
	assessmenthandler "talenthub/internal/transport/http/handlers/assessment"
	authhandler "talenthub/internal/transport/http/handlers/auth"
	competencyhandler "talenthub/internal/transport/http/handlers/competency"
	directoryhandler "talenthub/internal/transport/http/handlers/directory"
	gaphandler "talenthub/internal/transport/http/handlers/gap"
	idphandler "talenthub/internal/transport/http/handlers/idp"
	notificationshandler "talenthub/internal/transport/http/handlers/notifications"
	"talenthub/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	directoryService := directory.NewService(directory.NewStore(pool))
	competencyService := competency.NewService(competency.NewStore(pool))

	notificationService := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailFrom)
	notificationService.Start(ctx)

	assessmentService := assessment.NewService(
		assessment.NewStore(pool),
		directoryAdapter{directoryService},
		matrixAdapter{competencyService},
		notificationService,
	)
	gapService := gap.NewService(gap.NewStore(pool), directoryService, cfg.ReportExportDir)
	idpService := idp.NewService(idp.NewStore(pool), notificationService)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(maxBody(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.With(middleware.RequireUser).Get("/auth/me", authHandler.HandleMe)
		r.With(middleware.RequireUser).Post("/auth/change-password", authHandler.HandleChangePassword)

		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		competencyhandler.NewHandler(competencyService).RegisterRoutes(r)
		assessmenthandler.NewHandler(assessmentService).RegisterRoutes(r)
		gaphandler.NewHandler(gapService).RegisterRoutes(r)
		idphandler.NewHandler(idpService).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
	})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func maxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// directoryAdapter exposes the user directory to the assessment engine.
type directoryAdapter struct {
	svc *directory.Service
}

func (a directoryAdapter) EligibleUsers(ctx context.Context) ([]assessment.EligibleUser, error) {
	users, err := a.svc.EligibleUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]assessment.EligibleUser, 0, len(users))
	for _, u := range users {
		out = append(out, assessment.EligibleUser{UserID: u.UserID, CareerBandID: u.CareerBandID})
	}
	return out, nil
}

func (a directoryAdapter) LeaderUserID(ctx context.Context, userID string) (string, error) {
	return a.svc.LeaderUserID(ctx, userID)
}

func (a directoryAdapter) TeamMemberIDs(ctx context.Context, leaderUserID string) ([]string, error) {
	return a.svc.MemberIDsLedBy(ctx, leaderUserID)
}

// matrixAdapter snapshots career band requirements for assignment.
type matrixAdapter struct {
	svc *competency.Service
}

func (a matrixAdapter) MatrixForBand(ctx context.Context, careerBandID string) ([]assessment.RequirementSnapshot, error) {
	requirements, err := a.svc.MatrixForBand(ctx, careerBandID)
	if err != nil {
		return nil, err
	}
	out := make([]assessment.RequirementSnapshot, 0, len(requirements))
	for _, req := range requirements {
		out = append(out, assessment.RequirementSnapshot{
			CompetencyID:  req.CompetencyID,
			RequiredLevel: req.RequiredLevel,
		})
	}
	return out, nil
}
