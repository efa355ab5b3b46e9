package router

import (
	"net/http"

	_ "petrescue/docs"
	"petrescue/internal/adapters/storage"
	mem "petrescue/internal/adapters/storage/memory"
	"petrescue/internal/domain/admin"
	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/chat"
	"petrescue/internal/domain/lifecycle"
	"petrescue/internal/domain/matches"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
	"petrescue/internal/middleware"
	"petrescue/internal/platform/logger"
	"petrescue/internal/platform/metrics"
	"petrescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Tokens       auth.TokenIssuer  // puede ser nil (login sin tokens)

	// Opcional: si no viene, in-memory.
	Stores *storage.Set

	Logger   logger.Logger
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer // nil = sin /metrics

	// Opcional: limita las rutas que crean entidades.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Logger)

	stores := opts.Stores
	if stores == nil {
		stores = mem.NewStores()
	}

	// Services por módulo
	usersSvc := users.NewService(stores.Users)
	petsSvc := pets.NewService(stores.Pets)
	reportsSvc := reports.NewService(stores.Reports)
	adoptionsSvc := adoptions.NewService(stores.Adoptions)
	reviewsSvc := reviews.NewService(stores.Reviews)
	notificationsSvc := notifications.NewService(stores.Notifications)
	matchesSvc := matches.NewService(stores.Matches, petsSvc)
	chatSvc := chat.NewService(stores.Chat, usersSvc)

	dispatcher := notifications.NewDispatcher(stores.Notifications, log.With(map[string]any{"component": "notifications"}), opts.Metrics)
	engine := lifecycle.NewEngine(lifecycle.Deps{
		Pets:      stores.Pets,
		Users:     stores.Users,
		Reports:   stores.Reports,
		Adoptions: stores.Adoptions,
		Reviews:   stores.Reviews,
		Notifier:  dispatcher,
		Admins:    usersSvc,
		Logger:    log.With(map[string]any{"component": "lifecycle"}),
		Metrics:   opts.Metrics,
	})
	adminSvc := admin.NewService(admin.Deps{
		Users:         stores.Users,
		Pets:          stores.Pets,
		Adoptions:     stores.Adoptions,
		Reports:       stores.Reports,
		Reviews:       stores.Reviews,
		Notifications: stores.Notifications,
	})

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.ActorContext(usersSvc, log))
	r.Use(middleware.Logging(log, opts.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var writeLimit func(http.Handler) http.Handler
	if opts.RateLimiter != nil {
		writeLimit = opts.RateLimiter.Middleware
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.Tokens)
	pets.RegisterRoutes(r, petsSvc, writeLimit)
	reports.RegisterRoutes(r, reportsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	reviews.RegisterRoutes(r, reviewsSvc)
	notifications.RegisterRoutes(r, notificationsSvc)
	matches.RegisterRoutes(r, matchesSvc)
	chat.RegisterRoutes(r, chatSvc)
	lifecycle.RegisterRoutes(r, engine, writeLimit)

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)

		admin.RegisterAdminRoutes(ar, adminSvc)
		users.RegisterAdminRoutes(ar, usersSvc)
		pets.RegisterAdminRoutes(ar, petsSvc)
		reports.RegisterAdminRoutes(ar, reportsSvc)
		adoptions.RegisterAdminRoutes(ar, adoptionsSvc)
		reviews.RegisterAdminRoutes(ar, reviewsSvc)
		matches.RegisterAdminRoutes(ar, matchesSvc)
		lifecycle.RegisterAdminRoutes(ar, engine)
	})

	return r
}
