/*
Package postgres opens the GORM connection the database authenticator reads users through.

Connect dials PostgreSQL from a [CxnConfig].
FromConn wraps an already open *sql.DB, which is how tests hand in a mocked connection.
*/
package postgres
