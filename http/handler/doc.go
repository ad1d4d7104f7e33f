/*
Package handler holds the handler modules crossweb ships with.

	GuardHandler.authenticate  signs a caller in, setting the session cookies
	GuardHandler.logout        clears the session cookies
	GuardHandler.session       describes the current session as JSON
	FileHandler.request        serves static files; also the default handler

Each implements router.Module.
*/
package handler

// Names the modules are registered under.
const (
	NameFile  = "FileHandler"
	NameGuard = "GuardHandler"
)
