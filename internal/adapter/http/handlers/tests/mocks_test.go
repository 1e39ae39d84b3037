package tests

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"studyplanner/internal/core/domain"
)

const testToken = "alice-token"

var alice = domain.Identity{UserID: 1, Username: "alice", Email: "alice@x.com"}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) AddTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) ReconcileOverdue(ctx context.Context, userID uint64, today time.Time) (int64, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(int64), args.Error(1)
}

type reportServiceMock struct {
	mock.Mock
}

func (m *reportServiceMock) Stats(ctx context.Context, userID uint64) (domain.TaskStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.TaskStats), args.Error(1)
}

// ExportCSV writes the first return value, when it is a string, to w.
func (m *reportServiceMock) ExportCSV(ctx context.Context, userID uint64, w io.Writer) error {
	args := m.Called(ctx, userID, w)
	if body, ok := args.Get(0).(string); ok {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *reportServiceMock) EmailTasks(ctx context.Context, identity domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type sessionManagerMock struct {
	mock.Mock
}

func (m *sessionManagerMock) Issue(identity domain.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *sessionManagerMock) Parse(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

// aliceSessions accepts testToken as alice and rejects anything else.
func aliceSessions() *sessionManagerMock {
	sessions := new(sessionManagerMock)
	sessions.On("Parse", testToken).Return(alice, nil).Maybe()
	sessions.On("Parse", mock.Anything).Return(domain.Identity{}, domain.ErrInvalidSession).Maybe()
	return sessions
}
