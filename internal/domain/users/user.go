package users

// User is an account record. Users are created on registration and never
// updated or deleted afterwards.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
