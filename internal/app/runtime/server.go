package runtime

import (
	"net/http"

	"github.com/gorilla/mux"

	app "github.com/R3E-Network/petstore/internal/app"
	"github.com/R3E-Network/petstore/internal/app/httpapi"
	"github.com/R3E-Network/petstore/internal/app/metrics"
	"github.com/R3E-Network/petstore/internal/app/web"
	"github.com/R3E-Network/petstore/internal/config"
	"github.com/R3E-Network/petstore/internal/logging"
	"github.com/R3E-Network/petstore/internal/middleware"
	"github.com/R3E-Network/petstore/internal/pipeline"
	"github.com/R3E-Network/petstore/internal/view"
)

// Pipeline exposes the pieces of the request pipeline that may be tuned
// once the server is running.
type Pipeline struct {
	Handler  http.Handler
	Failsafe *pipeline.Failsafe
	Limiter  *middleware.RateLimiter
	Sweeper  *middleware.LimiterSweeper
}

// AttachTo registers the pipeline's background jobs with application so
// they run between its Start and Stop.
func (p *Pipeline) AttachTo(application *app.Application) error {
	if p.Sweeper == nil {
		return nil
	}
	return application.Attach(p.Sweeper)
}

// NewPipeline assembles the request pipeline around the store's routes.
// From the outside in: server headers, tracing, metrics, rate limiting,
// failsafe, method override, sessions and finally the router.
func NewPipeline(cfg config.Config, application *app.Application, views view.Renderer, log *logging.Logger) *Pipeline {
	router := mux.NewRouter()
	router.Use(middleware.CaptureRoute)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	if cfg.Admin.JWTSecret != "" {
		auth := middleware.NewAuthMiddleware(cfg.Admin.JWTSecret, log, nil)
		router.PathPrefix(httpapi.Prefix + "/").Handler(auth.Handler(httpapi.NewHandler(application)))
	} else {
		log.Warn("admin JWT secret not set; admin API disabled")
	}

	web.New(application.Catalog, application.Carts, application.Checkout, views, log).Register(router)

	failsafe := pipeline.NewFailsafe(views, pipeline.WithReporter(pipeline.Reporters(
		pipeline.NewLogReporter(log),
		pipeline.MetricsReporter{},
	)))

	var handler http.Handler = router
	handler = middleware.Sessions(handler)
	handler = middleware.MethodOverride(handler)
	handler = failsafe.Wrap(handler)

	var (
		limiter *middleware.RateLimiter
		sweeper *middleware.LimiterSweeper
	)
	if cfg.Limits.RequestsPerSecond > 0 {
		limiter = middleware.NewRateLimiter(float64(cfg.Limits.RequestsPerSecond), cfg.Limits.Burst, log)
		sweeper = middleware.NewLimiterSweeper(limiter, cfg.Limits.IdleTTL, cfg.Limits.SweepSchedule, log)
		handler = limiter.Handler(handler)
	}

	handler = middleware.Metrics()(handler)
	handler = middleware.NewTracingMiddleware(log).Handler(handler)
	handler = middleware.ServerHeaders(cfg.Server.Name)(handler)

	return &Pipeline{Handler: handler, Failsafe: failsafe, Limiter: limiter, Sweeper: sweeper}
}

// NewServer returns an HTTP server for the whole store.
func NewServer(cfg config.Config, application *app.Application, log *logging.Logger) (*http.Server, *Pipeline) {
	p := NewPipeline(cfg, application, view.MustNew(), log)
	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      p.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     stdLogger(log),
	}, p
}
