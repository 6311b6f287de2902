// Package models defines server-side data models persisted in the database.
package models

// User is a registered account. Hash holds the credential hash produced by
// cryptox.PasswordHasher; the plaintext password is never stored.
type User struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Hash  string `db:"hash"`
}
