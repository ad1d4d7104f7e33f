package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/postgres"
	"gorm.io/gorm"
)

// A userRecord is a row of the users table.
type userRecord struct {
	ID       uint
	Username string
	Password string
	Roles    string
}

func (userRecord) TableName() string { return "users" }

// Database authenticates Plain credentials against the users table:
// username, password, and roles as a comma separated list.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database { return &Database{db: db} }

// DatabaseFactory connects to the database the guard configuration describes.
func DatabaseFactory(cfg *config.Guard) (guard.Authenticator, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("%w: guard.database", ErrNoConfig)
	}

	env := crossweb.EnvVarOrEnv("ENVIRONMENT", crossweb.Development)
	db, err := postgres.Connect(&postgres.CxnConfig{URL: cfg.Database.URL}, env)
	if err != nil {
		return nil, err
	}

	return NewDatabase(db), nil
}

func (a *Database) Authenticate(ctx context.Context, cred guard.Credential) (guard.Identity, error) {
	plain, ok := cred.(guard.Plain)
	if !ok {
		return guard.Identity{}, guard.ErrAuthenticateInvalidType.WithReference(cred)
	}

	var u userRecord
	err := a.db.WithContext(ctx).Where("username = ?", plain.Username).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guard.Identity{}, guard.ErrAuthenticateNoUser.WithReference(plain.Username)
	}

	if err != nil {
		return guard.Identity{}, fmt.Errorf("%w: %s", ErrLookup, err)
	}

	if !guard.PasswordMatches(u.Password, plain.Password) {
		return guard.Identity{}, guard.ErrAuthenticateWrongPassword.WithReference(plain.Username)
	}

	return guard.Identity{Username: u.Username, Roles: splitRoles(u.Roles)}, nil
}
