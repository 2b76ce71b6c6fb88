// Package subscriber persists blog subscribers in a file-backed SQLite
// database. Emails are unique; the database enforces it.
package subscriber
