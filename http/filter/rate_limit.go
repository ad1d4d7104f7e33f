package filter

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/http/middleware"
	"golang.org/x/time/rate"
)

const (
	defaultPerSecond = 5
	defaultBurst     = 20
	visitorTTL       = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	val   map[string]Visitor
	sync.Mutex
}

// NewVisitors limits each visitor to perSecond requests every second with bursts of up to burst.
// Non-positive values fall back to 5 and 20.
func NewVisitors(perSecond float64, burst int) *Visitors {
	if perSecond <= 0 {
		perSecond = defaultPerSecond
	}

	if burst <= 0 {
		burst = defaultBurst
	}

	return &Visitors{burst: burst, limit: rate.Limit(perSecond), val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len is the number of visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimitFilter refuses requests from client addresses exceeding their rate with a 429.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
type RateLimitFilter struct {
	visitors *Visitors
}

// NewRateLimitFilter limits visitors to the default rate until Setup reads the configured one.
func NewRateLimitFilter() *RateLimitFilter {
	return &RateLimitFilter{visitors: NewVisitors(0, 0)}
}

// Setup reads the rateLimit section of cfg.
func (f *RateLimitFilter) Setup(cfg *config.Config) error {
	var rl config.RateLimit
	if cfg != nil && cfg.RateLimit != nil {
		rl = *cfg.RateLimit
	}

	f.visitors = NewVisitors(rl.PerSecond, rl.Burst)
	return nil
}

func (f *RateLimitFilter) Check(r *http.Request) (*http.Request, bool, error) {
	ip, ok := middleware.IPFromContext(r.Context())
	if !ok {
		ip = middleware.ClientIP(r)
	}

	allowed := f.visitors.Fetch(ip).Limiter.Allow()
	f.visitors.cleanup()

	return r, allowed, nil
}

func (f *RateLimitFilter) Fail(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
