package ports

import (
	"context"
	"time"

	"studyplanner/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.Identity, error)
}

// SessionManager turns an identity into a bearer token and back.
type SessionManager interface {
	Issue(identity domain.Identity) (string, time.Time, error)
	Parse(token string) (domain.Identity, error)
}

type Mailer interface {
	Send(ctx context.Context, msg domain.MailMessage) error
}
