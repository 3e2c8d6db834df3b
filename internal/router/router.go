package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	authmem "pura-pata/internal/adapters/auth/memory"
	mem "pura-pata/internal/adapters/storage/memory"
	_ "pura-pata/internal/docs"
	"pura-pata/internal/domain/account"
	"pura-pata/internal/domain/dogs"
	"pura-pata/internal/domain/mapview"
	"pura-pata/internal/domain/photos"
	"pura-pata/internal/domain/seo"
	"pura-pata/internal/domain/users"
	"pura-pata/internal/middleware"
	"pura-pata/internal/platform/logger"
	"pura-pata/internal/platform/metrics"
	"pura-pata/internal/ports/auth"
	"pura-pata/internal/ports/storage"
)

type Options struct {
	Log     logger.Logger    // nil => no-op
	Metrics *metrics.Metrics // nil => registry propio

	PublicBaseURL      string
	CORSAllowedOrigins []string
	CookieSecure       bool

	// Auth: si Provider es nil se usa el proveedor in-memory.
	// Verifier nil => modo dev (acepta X-Debug-User-ID).
	AuthProvider auth.Provider
	AuthVerifier auth.AuthVerifier

	// Backend y storage: nil => in-memory.
	Dogs   dogs.Repository
	Users  users.Repository
	Photos storage.PhotoStore
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	baseURL := strings.TrimRight(opts.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log, m))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(opts.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DebugUserIDHdr},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Adapters: lo que no venga configurado se resuelve en memoria (modo dev).
	provider := opts.AuthProvider
	if provider == nil {
		provider = authmem.NewProvider("", 0)
		log.Warn("auth provider not configured, using in-memory provider", nil)
	}
	dogRepo := opts.Dogs
	if dogRepo == nil {
		dogRepo = mem.NewDogRepo()
		log.Warn("API_URL not set, using in-memory dogs backend", nil)
	}
	userRepo := opts.Users
	if userRepo == nil {
		userRepo = mem.NewUserRepo()
	}
	photoStore := opts.Photos
	var devPhotos *mem.PhotoStore
	if photoStore == nil {
		devPhotos = mem.NewPhotoStore(baseURL)
		photoStore = devPhotos
		log.Warn("photo storage not configured, serving photos from memory", nil)
	}

	r.Use(middleware.Session(middleware.SessionOptions{
		Provider: provider,
		Verifier: opts.AuthVerifier,
		Secure:   opts.CookieSecure,
		Log:      log,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if devPhotos != nil {
		r.Mount(mem.PhotoRoute, http.StripPrefix(mem.PhotoRoute, devPhotos.Handler()))
	}

	// Services por módulo
	uploader := photos.NewUploader(photoStore, log, m)
	dogsSvc := dogs.NewService(dogRepo, uploader, log)
	workflow := dogs.NewWorkflow(dogRepo, uploader, log, m)
	usersSvc := users.NewService(userRepo)
	accountSvc := account.NewService(usersSvc, baseURL, log)

	seo.RegisterRoutes(r, dogsSvc, baseURL, log)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		dogs.RegisterRoutes(api, dogsSvc, workflow)
		mapview.RegisterRoutes(api, dogsSvc)
		users.RegisterRoutes(api, usersSvc)
		account.RegisterRoutes(api, accountSvc)
		seo.RegisterAPIRoutes(api, dogsSvc, baseURL)
	})

	return r
}

func allowedOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
