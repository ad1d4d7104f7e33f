package guard

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/logger"
)

// A Guard authenticates credentials into sessions and authorizes sessions onto resources.
//
// Every method of a nil *Guard fails with ErrModuleNotInitialized.
type Guard struct {
	authn    Authenticator
	authz    *Authorizer
	cfg      config.Guard
	log      logger.Logger
	sessions *SessionStore
}

// A GuardOpt configures a Guard under construction.
type GuardOpt func(*builder)

type builder struct {
	authenticators map[string]AuthenticatorFactory
	cipher         Cipher
	log            logger.Logger
	storeOpts      []SessionStoreOpt
}

// WithAuthenticator registers factory under name,
// to be used when the guard configuration names it as its authenticator.
func WithAuthenticator(name string, factory AuthenticatorFactory) GuardOpt {
	return func(b *builder) {
		b.authenticators[name] = factory
	}
}

// WithCipher overrides the Cipher the encryption configuration describes.
func WithCipher(c Cipher) GuardOpt {
	return func(b *builder) {
		b.cipher = c
	}
}

// WithLogger sets the logger.Logger the Guard logs through.
func WithLogger(l logger.Logger) GuardOpt {
	return func(b *builder) {
		b.log = l
	}
}

// WithSessionStoreOpts configures the SessionStore of the Guard.
func WithSessionStoreOpts(opts ...SessionStoreOpt) GuardOpt {
	return func(b *builder) {
		b.storeOpts = append(b.storeOpts, opts...)
	}
}

// New constructs the Guard cfg describes.
//
// The permission table is built from every route of cfg.
// Without a guard configuration, New returns ErrModuleNotInitialized.
func New(cfg *config.Config, opts ...GuardOpt) (*Guard, error) {
	if cfg == nil || cfg.Guard == nil {
		return nil, ErrModuleNotInitialized
	}

	b := &builder{authenticators: make(map[string]AuthenticatorFactory)}
	for _, opt := range opts {
		opt(b)
	}

	if b.log == nil {
		b.log = logger.New()
	}

	g := &Guard{
		authz: NewAuthorizer(cfg.Routes),
		cfg:   *cfg.Guard,
		log:   b.log,
	}

	if g.cfg.Authenticator == "" {
		g.authn = NewRegistry(g.cfg.Users)
	} else {
		factory, ok := b.authenticators[g.cfg.Authenticator]
		if !ok {
			return nil, fmt.Errorf("%w: no authenticator %q", crossweb.ErrBadConfig, g.cfg.Authenticator)
		}

		authn, err := factory(&g.cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: authenticator %q: %s", crossweb.ErrBadConfig, g.cfg.Authenticator, err)
		}
		g.authn = authn
	}

	c := b.cipher
	if c == nil {
		c = NewCipher(g.cfg.Encryption, g.log)
	}
	g.sessions = NewSessionStore(c, b.storeOpts...)

	return g, nil
}

// Authenticate verifies cred and issues a Session to whoever presented it.
func (g *Guard) Authenticate(ctx context.Context, cred Credential) (*Session, error) {
	if g == nil {
		return nil, ErrModuleNotInitialized
	}

	if cred == nil {
		return nil, ErrInvalidCredential
	}

	id, err := g.authn.Authenticate(ctx, cred)
	if err != nil {
		return nil, err
	}

	return g.sessions.Create(id)
}

// Authorize decides whether session may reach res. A nil session is anonymous.
func (g *Guard) Authorize(_ context.Context, res Resource, session *Session) (bool, error) {
	if g == nil {
		return false, ErrModuleNotInitialized
	}

	var id *Identity
	if session != nil {
		id = &session.User
	}

	return g.authz.Authorize(res, id), nil
}

// Resume decodes token and rotates it.
func (g *Guard) Resume(_ context.Context, token string) (*Session, error) {
	if g == nil {
		return nil, ErrModuleNotInitialized
	}

	session, err := g.sessions.Get(token)
	if err != nil {
		return nil, err
	}

	return g.sessions.Resume(session)
}

// Validate decodes token without rotating it.
func (g *Guard) Validate(_ context.Context, token string) (*Session, error) {
	if g == nil {
		return nil, ErrModuleNotInitialized
	}

	return g.sessions.Get(token)
}

// Reissue rotates an already decoded session.
func (g *Guard) Reissue(session *Session) (*Session, error) {
	if g == nil {
		return nil, ErrModuleNotInitialized
	}

	return g.sessions.Resume(session)
}

// SessionKey names the cookie, or body field, the session token travels in.
func (g *Guard) SessionKey() string {
	if g == nil {
		return ""
	}

	return g.cfg.Session
}

// Locations are where browsers are sent to sign in and after signing in or out.
func (g *Guard) Locations() config.Locations {
	if g == nil {
		return config.Locations{}
	}

	return g.cfg.Locations
}

// NewSessionContext stashes session in ctx.
func NewSessionContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, crossweb.SessionKey, session)
}

// SessionFromContext retrieves the Session stashed in ctx, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(crossweb.SessionKey).(*Session)
	return s, ok && s != nil
}
