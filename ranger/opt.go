package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/http/middleware"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/http/router"
	"github.com/xy-planning-network/crossweb/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components New only builds after every option ran
// and thus return an OptFollowup to be called once those components exist.
//
// WithConfig is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithModule is an example of the second.
// The registry it adds to exists only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithConfig uses cfg as the configuration document.
func WithConfig(cfg *config.Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if cfg == nil {
			return nil, fmt.Errorf("%w: nil config", crossweb.ErrMissingData)
		}

		rng.cfg = cfg
		return nil, nil
	}
}

// WithConfigFile reads the configuration document found at path.
func WithConfigFile(path string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		rng.cfg = cfg
		return nil, nil
	}
}

// WithContext uses ctx as the base context of the web server.
// Canceling it stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the Environment is Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := crossweb.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = crossweb.EnvVarOrEnv(environmentEnvVar, crossweb.Development)
		}

		rng.env = e
		return nil, nil
	}
}

// WithGuardOpts passes opts through to guard.New,
// after the authenticators of package authn are registered.
func WithGuardOpts(opts ...guard.GuardOpt) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.guardOpts = append(rng.guardOpts, opts...)
		return nil, nil
	}
}

// WithLogger uses l in place of the logger the configuration describes.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithMiddleware appends adapters to the outer middleware stack,
// after panic reporting, CORS and IP address injection.
func WithMiddleware(adapters ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.mws = append(rng.mws, adapters...)
		return nil, nil
	}
}

// WithFilter constructs a followup option that, when called,
// registers factory under name, replacing any built-in filter of that name.
func WithFilter(name string, factory func(rng *Ranger) router.Filter) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.reg.Filter(name, func() router.Filter { return factory(rng) })
			rng.l.Debug(fmt.Sprintf("using filter %s", name), nil)
			return nil
		}, nil
	}
}

// WithModule constructs a followup option that, when called,
// registers factory under name, replacing any built-in handler module of that name.
func WithModule(name string, factory func(rng *Ranger) router.Module) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.reg.Module(name, func() router.Module { return factory(rng) })
			rng.l.Debug(fmt.Sprintf("using handler %s", name), nil)
			return nil
		}, nil
	}
}

// WithResponder uses d in place of the default *resp.Responder.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Responder = d
		return nil, nil
	}
}

// WithServer uses s as the web server.
// Its Handler is replaced by the middleware stack and dispatcher.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}
