package guard

import (
	"encoding/json"
	"time"
)

// SessionTTL is how long a session token stays valid after it was issued or resumed.
const SessionTTL = 1314000000 * time.Millisecond

// An Identity is who a Session was issued to.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// GetUsername implements logger.LogUser.
func (i Identity) GetUsername() string { return i.Username }

// GetRoles implements logger.LogUser.
func (i Identity) GetRoles() []string { return i.Roles }

// A Session is a stateless capability: ID is the encryption of User and Timestamp,
// so holding a valid ID is all it takes to be authenticated.
type Session struct {
	ID        string   `json:"-"`
	User      Identity `json:"user"`
	Timestamp int64    `json:"timestamp"`
}

// IssuedAt is when the session was created or last resumed.
func (s *Session) IssuedAt() time.Time { return time.UnixMilli(s.Timestamp) }

// Expires is when the session stops being valid given ttl.
func (s *Session) Expires(ttl time.Duration) time.Time {
	return time.UnixMilli(s.Timestamp + ttl.Milliseconds())
}

// Expired reports whether, at now, the session outlived ttl.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(s.Expires(ttl))
}

// A SessionStore encodes sessions into tokens and decodes them back.
// It consults no server-side table; the token is the only state.
//
// A SessionStore never judges expiry, the caller compares
// the current time against Session.Expires.
type SessionStore struct {
	cipher Cipher
	now    func() time.Time
}

// A SessionStoreOpt configures a SessionStore.
type SessionStoreOpt func(*SessionStore)

// WithClock replaces time.Now as the source of session timestamps.
func WithClock(now func() time.Time) SessionStoreOpt {
	return func(s *SessionStore) {
		s.now = now
	}
}

func NewSessionStore(c Cipher, opts ...SessionStoreOpt) *SessionStore {
	s := &SessionStore{cipher: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create issues a new Session for id, timestamped now.
func (s *SessionStore) Create(id Identity) (*Session, error) {
	return s.seal(id, "")
}

// Resume issues a fresh token for session,
// timestamped now; the returned Session never shares an ID with session.
func (s *SessionStore) Resume(session *Session) (*Session, error) {
	if session == nil {
		return nil, ErrInvalidSession
	}

	return s.seal(session.User, session.ID)
}

// Get decodes token.
// Any failure to decrypt or parse is ErrInvalidSession, never a partial Session.
func (s *SessionStore) Get(token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	plain, err := s.cipher.Decrypt(token)
	if err != nil {
		return nil, ErrInvalidSession.WithReference(err)
	}

	session := new(Session)
	if err := json.Unmarshal(plain, session); err != nil {
		return nil, ErrInvalidSession.WithReference(err)
	}

	if session.User.Username == "" {
		return nil, ErrInvalidSession.WithReference("no user")
	}

	session.ID = token
	return session, nil
}

// seal timestamps and encrypts a Session for id.
// When the token would equal prev, the timestamp moves forward a millisecond
// so that a resumed session always rotates its token.
func (s *SessionStore) seal(id Identity, prev string) (*Session, error) {
	session := &Session{User: id, Timestamp: s.now().UnixMilli()}
	for {
		b, err := json.Marshal(session)
		if err != nil {
			return nil, err
		}

		token, err := s.cipher.Encrypt(b)
		if err != nil {
			return nil, err
		}

		if token != prev {
			session.ID = token
			return session, nil
		}

		session.Timestamp++
	}
}
