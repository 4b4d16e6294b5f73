package ports

// PasswordHasher is the one-way credential transform. Verify fails loudly on
// missing arguments rather than silently returning false; callers pre-check
// presence and fail closed.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) (bool, error)
}
