package domain

type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string
}

type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Identity is the authenticated user attached to a single request.
type Identity struct {
	UserID   uint64
	Username string
	Email    string
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, Email: u.Email}
}
