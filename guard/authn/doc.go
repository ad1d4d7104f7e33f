/*
Package authn holds the alternate authenticators a guard configuration can name:

	"authenticator": "redis"     users as Redis hashes, see [Redis]
	"authenticator": "database"  users as rows of a PostgreSQL table, see [Database]
	"authenticator": "token"     HS256 tokens signed by a third party, see [Token]

[Options] registers all three with a [guard.Guard] under construction.
*/
package authn

import "github.com/xy-planning-network/crossweb/guard"

const (
	NameDatabase = "database"
	NameRedis    = "redis"
	NameToken    = "token"
)

// Options registers every authenticator of this package under its name.
func Options() []guard.GuardOpt {
	return []guard.GuardOpt{
		guard.WithAuthenticator(NameDatabase, DatabaseFactory),
		guard.WithAuthenticator(NameRedis, RedisFactory),
		guard.WithAuthenticator(NameToken, TokenFactory),
	}
}
