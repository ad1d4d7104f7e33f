package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"github.com/xy-planning-network/crossweb"
)

const defaultSessionKey = "session"

// A Config is the parsed configuration document of a crossweb server.
type Config struct {
	// Path is the absolute location the document was read from.
	Path string `json:"-"`

	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`

	// Base overrides the directory static files are served from.
	Base string `json:"_base"`

	// Initial names handler modules set up before any filter or route.
	Initial []string `json:"initial"`
	Filters []string `json:"filters"`
	Routes  Routes   `json:"routes"`

	Guard     *Guard     `json:"guard"`
	RateLimit *RateLimit `json:"rateLimit"`
	CORS      []string   `json:"cors"`
	Log       Log        `json:"log"`
}

// A Guard configures sessions, encryption and authentication.
type Guard struct {
	// Session names the cookie, or body field, carrying the session token.
	Session       string          `json:"session"`
	Encryption    Encryption      `json:"encryption"`
	Locations     Locations       `json:"locations"`
	Users         map[string]User `json:"users"`
	Authenticator string          `json:"authenticator"`

	Redis    *Redis    `json:"redis"`
	Database *Database `json:"database"`
	Token    *Token    `json:"token"`
}

// An Encryption configures the cipher sealing session tokens.
// Key, IV and Hash are hex encoded.
type Encryption struct {
	Method string `json:"method"`
	Key    string `json:"key"`
	IV     string `json:"iv"`
	Hash   string `json:"hash"`
}

// Locations are where the guard sends browsers.
type Locations struct {
	Index string `json:"index"`
	Login string `json:"login"`
}

// A User is an entry of the built-in user registry.
//
// Password is either plain text or a bcrypt hash.
type User struct {
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

type Database struct {
	URL string `json:"url"`
}

type Token struct {
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
}

type RateLimit struct {
	PerSecond float64 `json:"perSecond"`
	Burst     int     `json:"burst"`
}

type Log struct {
	Level string `json:"level"`
}

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", crossweb.ErrBadConfig, err)
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", crossweb.ErrNotExist, err)
	}

	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}

	cfg.Path = abs
	return cfg, nil
}

// Parse parses the document in b.
// Comments and trailing commas are stripped before decoding.
func Parse(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := json.Unmarshal(jsonc.ToJSON(b), cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", crossweb.ErrBadConfig, err)
	}

	if cfg.Guard != nil && cfg.Guard.Session == "" {
		cfg.Guard.Session = defaultSessionKey
	}

	return cfg, nil
}

// Dir is the directory the document was read from.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}

	return filepath.Dir(c.Path)
}

// Resolve joins p to Dir when p is relative.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir(), p)
}
