package tests

// The hand-written mocks in mocks_test.go follow mockery's layout. To
// regenerate expecter-style mocks instead:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name "AuthService|TaskService|ReportService|SessionManager" --dir ../../../../core/ports --output ./mocks --outpkg mocks --with-expecter
