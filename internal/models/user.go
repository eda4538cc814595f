package models

// User represents a registered account. The KDF column holds the encoded
// argon2id hash of the user's password; plain passwords are never stored.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	KDF       string `json:"-"` // Never expose in JSON
}

// Signup carries the fields supplied by a signup request, password still in
// the clear. The credential store hashes it at the storage boundary.
type Signup struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}
