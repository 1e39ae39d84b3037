package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "studyplanner/internal/adapter/db"
	"studyplanner/internal/config"
)

// IntegrationSuiteBase runs against a throwaway SQLite file by default. Set
// TEST_DB_DRIVER=mysql to run the same suite against a MySQL server.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	driver     string
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.driver = envOrDefault("TEST_DB_DRIVER", config.DriverSQLite)
	if s.driver == config.DriverMySQL {
		s.setupMySQL()
	}
}

func (s *IntegrationSuiteBase) setupMySQL() {
	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "planner")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, database, params))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.driver != config.DriverMySQL {
		return
	}
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// ResetDatabase leaves an empty, fully migrated schema.
func (s *IntegrationSuiteBase) ResetDatabase() {
	if s.driver == config.DriverMySQL {
		_, err := s.DB.Exec(`
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS users;
DROP TABLE IF EXISTS schema_migrations;
`)
		s.Require().NoError(err)
	} else {
		db, err := dbadapter.ConnectSQLite(filepath.Join(s.T().TempDir(), "tasks.db"))
		s.Require().NoError(err)
		s.T().Cleanup(func() { _ = db.Close() })
		s.DB = db
	}

	_, err := dbadapter.Migrate(context.Background(), s.DB)
	s.Require().NoError(err)
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
