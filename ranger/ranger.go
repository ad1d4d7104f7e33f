package ranger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/http/handler"
	"github.com/xy-planning-network/crossweb/http/middleware"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/http/router"
	"github.com/xy-planning-network/crossweb/logger"
)

// A Ranger holds every component of a crossweb server and exposes them to one another.
type Ranger struct {
	*resp.Responder

	cfg       *config.Config
	ctx       context.Context
	env       crossweb.Environment
	files     *handler.FileHandler
	guard     *guard.Guard
	guardOpts []guard.GuardOpt
	handler   http.Handler
	l         logger.Logger
	mws       []middleware.Adapter
	reg       *router.Registry
	srv       *http.Server
	table     router.Table
}

// New constructs a Ranger from the provided options.
//
// Options run first, then the defaults fill in whatever they left unset:
// the environment, the logger, the guard, the responder and the registry.
// Followups returned by options run last, before the route table is built.
//
// A configuration is required, either through WithConfig or WithConfigFile.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", crossweb.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.cfg == nil {
		return nil, fmt.Errorf("%w: no configuration", crossweb.ErrBadConfig)
	}

	if err := r.defaults(); err != nil {
		return nil, fmt.Errorf("%w: %s", crossweb.ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", crossweb.ErrBadConfig, err)
		}
	}

	r.table = router.Build(r.cfg, r.reg, r.l)
	dispatcher := router.New(r.table, r.files, r.l)
	r.handler = defaultHandler(r.env, r.cfg, r.Responder, r.l, dispatcher, r.mws)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.cfg)
	}
	r.srv.Handler = r.handler

	return r, nil
}

func (r *Ranger) defaults() error {
	if r.env == "" {
		r.env = crossweb.EnvVarOrEnv(environmentEnvVar, crossweb.Development)
	}

	if r.l == nil {
		r.l = defaultLogger(r.env, r.cfg)
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.cfg.Guard != nil {
		g, err := defaultGuard(r.cfg, r.l, r.guardOpts)
		if err != nil {
			return err
		}
		r.guard = g
	} else {
		r.l.Warn("no guard configured, authentication is unavailable", nil)
	}

	if r.Responder == nil {
		r.Responder = resp.NewResponder(resp.WithLogger(r.l))
	}

	r.files = handler.NewFileHandler(r.l)
	if err := r.files.Setup(r.cfg); err != nil {
		return err
	}

	r.reg = defaultRegistry(r.guard, r.Responder, r.files, r.l)

	return nil
}

func (r *Ranger) EmitConfig() *config.Config    { return r.cfg }
func (r *Ranger) EmitEnv() crossweb.Environment { return r.env }
func (r *Ranger) EmitGuard() *guard.Guard       { return r.guard }
func (r *Ranger) EmitLogger() logger.Logger     { return r.l }
func (r *Ranger) EmitTable() router.Table       { return r.table }

// ServeHTTP serves req through the middleware stack and the dispatcher,
// exactly as the web server Guide begins does.
func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		err := r.srv.ListenAndServe()
		if err == http.ErrServerClosed {
			errs <- nil
			return
		}

		err = fmt.Errorf("could not listen: %w", err)
		r.l.Error(err.Error(), nil)
		errs <- err
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		r.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
