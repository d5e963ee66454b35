package router

import (
	"net/http"

	_ "puppy-store/docs"
	mem "puppy-store/internal/adapters/storage/memory"
	"puppy-store/internal/dataset"
	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/middleware"
	"puppy-store/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene nil, usa el dataset embebido en memoria sin delay.
	Service *puppies.Service

	Logger logger.Logger

	// DebugRoutes monta /debug/simulate-error (modo dev).
	DebugRoutes bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := opts.Service
	if svc == nil {
		svc = defaultService(log)
	}

	puppies.RegisterRoutes(r, svc)
	if opts.DebugRoutes {
		puppies.RegisterDebugRoutes(r, svc)
	}

	return r
}

// defaultService arma el Service sobre el dataset embebido (dev/tests).
func defaultService(log logger.Logger) *puppies.Service {
	all, err := dataset.Default()
	if err != nil {
		log.Error("embedded dataset invalid", map[string]any{"error": err.Error()})
		all = nil
	}
	repo, err := mem.NewPuppyRepo(all)
	if err != nil {
		log.Error("embedded dataset invalid", map[string]any{"error": err.Error()})
		repo, _ = mem.NewPuppyRepo(nil)
	}
	return puppies.NewService(repo, puppies.Options{SimulateError: puppies.NewSwitch(false)})
}
