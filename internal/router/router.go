package router

import (
	"net/http"

	_ "cat-registry/docs"
	mem "cat-registry/internal/adapters/storage/memory"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/users"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
	"cat-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer  // nil => POST /auth/login responde 404

	// Opcionales: si no vienen, in-memory.
	Cats  cats.Repository
	Users users.Repository

	Metrics *metrics.HTTP
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewHTTP()
	}
	fwd := apierror.NewForwarder(log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log, m))
	r.Use(middleware.Recover(log, fwd))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fwd.Write(w, r, apierror.NotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fwd.Write(w, r, apierror.New(http.StatusMethodNotAllowed, "method not allowed"))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	catRepo := opts.Cats
	if catRepo == nil {
		catRepo = mem.NewCatRepo()
	}
	userRepo := opts.Users
	if userRepo == nil {
		userRepo = mem.NewUserRepo()
	}

	// cats valida owners contra users; users cascadea el borrado a cats
	catsSvc := cats.NewService(catRepo, users.NewLookup(userRepo))
	usersSvc := users.NewService(userRepo, catsSvc, opts.TokenIssuer)

	// Rutas por módulo
	cats.RegisterRoutes(r, catsSvc, fwd)
	users.RegisterRoutes(r, usersSvc, fwd)

	return r
}
