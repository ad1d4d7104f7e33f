/*
Package ranger initializes and manages a crossweb server with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a configuration document,
passed in with [WithConfig] or read with [WithConfigFile].

[New] builds, in order:
  - the one guard every filter and handler shares, when the document configures one
  - the registry of built-in filters and handler modules
  - the route table, through [router.Build]
  - the dispatcher, falling back to the static files of the document's base directory
  - the outer stack: panic reporting, CORS, IP injection and a health check at [HealthPath]

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on the document's address and port, or :3000 without one.
Stop that web server with [*Ranger.Shutdown],
cancel the context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

Besides the configuration document, these environment variables are read.
  - ENVIRONMENT: the environment the server is running in; cf. [crossweb.Environment]
  - LOG_LEVEL: the level at which to begin logging, overriding the document's; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the server should listen on, overriding the document's
  - SENTRY_DSN: ships errors and panics to Sentry when set
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idiling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
