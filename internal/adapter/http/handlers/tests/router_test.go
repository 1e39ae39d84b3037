package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	httpadapter "studyplanner/internal/adapter/http"
	"studyplanner/internal/adapter/http/handlers"
	"studyplanner/internal/adapter/http/middleware"
	"studyplanner/pkg/translator"
)

type fixture struct {
	auth     *authServiceMock
	tasks    *taskServiceMock
	reports  *reportServiceMock
	sessions *sessionManagerMock
	router   *gin.Engine
}

func newFixture() *fixture {
	f := &fixture{
		auth:     new(authServiceMock),
		tasks:    new(taskServiceMock),
		reports:  new(reportServiceMock),
		sessions: aliceSessions(),
	}

	router := gin.New()
	router.Use(middleware.SessionMiddleware(f.sessions))
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(nil),
		Auth:   handlers.NewAuthHandler(f.auth, f.sessions, false),
		Tasks:  handlers.NewTaskHandler(f.tasks, f.reports),
		Web:    handlers.NewWebHandler(f.auth, f.tasks, f.reports, f.sessions, false),
	})
	f.router = router
	return f
}

// do sends a request as alice when authenticated is true.
func (f *fixture) do(method, target string, body io.Reader, contentType string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) json(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return f.do(method, target, reader, "application/json", true)
}

func (f *fixture) form(target, body string) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, target, strings.NewReader(body), formType, true)
}

const formType = "application/x-www-form-urlencoded"

func formBody(body string) io.Reader {
	return strings.NewReader(body)
}

func testExpiry() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}
