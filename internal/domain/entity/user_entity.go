package entity

// User is the credential record for a registered principal.
// Password holds a bcrypt hash; the plaintext is never stored or logged.
type User struct {
	ID       int64
	Username string
	Password string
}
