package ports

// PasswordHasher abstracts one-way password hashing so the application layer
// stays independent of the chosen algorithm.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
