package ranger

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/guard/authn"
	"github.com/xy-planning-network/crossweb/http/filter"
	"github.com/xy-planning-network/crossweb/http/handler"
	"github.com/xy-planning-network/crossweb/http/middleware"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/http/router"
	"github.com/xy-planning-network/crossweb/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Web server defaults
	DefaultPort               = 3000
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// HealthPath answers liveness probes ahead of the dispatcher.
	HealthPath = "/_health"

	// renderHandler is the module a route naming only a model resolves to.
	// Without templating, it serves the static file at the path.
	renderHandler = "RenderHandler"
)

// defaultLogger constructs a logger.Logger at the level the configuration names,
// which LOG_LEVEL overrides.
func defaultLogger(env crossweb.Environment, cfg *config.Config) logger.Logger {
	lvl := defaultLogLvl
	if ll := logger.NewLogLevel(strings.ToUpper(cfg.Log.Level)); ll != logger.LogLevelUnk {
		lvl = ll
	}
	lvl = crossweb.EnvVarOrLogLevel(logLevelEnvVar, lvl)

	l := logger.New(logger.WithEnv(env.String()), logger.WithLevel(lvl))
	l.Debug("setting up logger", nil)

	return l
}

// defaultGuard constructs the one *guard.Guard every filter and handler shares.
// The authenticators of package authn are available by name; opts may add more.
func defaultGuard(cfg *config.Config, l logger.Logger, opts []guard.GuardOpt) (*guard.Guard, error) {
	args := append(authn.Options(), guard.WithLogger(l))
	return guard.New(cfg, append(args, opts...)...)
}

// defaultRegistry registers the built-in filters and handler modules.
//
// Constructed once, every module is shared by all the routes naming it.
// The file handler was set up already, so its actions are registered as plain
// router.Actions which Build does not set up again. It doubles as RenderHandler.
func defaultRegistry(g *guard.Guard, d *resp.Responder, files *handler.FileHandler, l logger.Logger) *router.Registry {
	guards := handler.NewGuardHandler(g, d, l)

	reg := router.NewRegistry()
	reg.Filter(filter.NameForm, func() router.Filter { return filter.NewFormFilter(l) })
	reg.Filter(filter.NameGuard, func() router.Filter { return filter.NewGuardFilter(g, d, l) })
	reg.Filter(filter.NameRateLimit, func() router.Filter { return filter.NewRateLimitFilter() })
	reg.Filter(filter.NameRequestID, func() router.Filter { return filter.NewRequestIDFilter() })

	reg.Module(handler.NameGuard, func() router.Module { return guards })
	fileActions := router.Actions{"request": files.ServeHTTP}
	reg.Module(handler.NameFile, func() router.Module { return fileActions })
	reg.Module(renderHandler, func() router.Module { return fileActions })

	return reg
}

// defaultHandler wraps the dispatcher in a *mux.Router answering HealthPath
// and the outer middleware stack.
func defaultHandler(
	env crossweb.Environment,
	cfg *config.Config,
	d *resp.Responder,
	l logger.Logger,
	dispatcher http.Handler,
	mws []middleware.Adapter,
) http.Handler {
	m := mux.NewRouter()
	m.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		if err := d.Json(w, r, resp.Data(map[string]string{"status": "ok"})); err != nil {
			d.Err(w, r, err)
		}
	}).Methods(http.MethodGet, http.MethodHead)
	m.PathPrefix("/").Handler(dispatcher)

	adapters := []middleware.Adapter{
		middleware.ReportPanic(env, l),
		middleware.CORS(cfg.CORS),
		middleware.InjectIPAddress(),
	}

	return middleware.Chain(m, append(adapters, mws...)...)
}

// defaultServer constructs a default [*http.Server] listening on the configured address and port.
// PORT overrides the configured port.
func defaultServer(ctx context.Context, cfg *config.Config) *http.Server {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	port = crossweb.EnvVarOrInt(portEnvVar, port)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Address, strconv.Itoa(port)),
		IdleTimeout:  crossweb.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  crossweb.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: crossweb.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
