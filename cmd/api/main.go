package main

import (
	"context"

	"studyplanner/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "studyplanner/internal/adapter/db"
	httpadapter "studyplanner/internal/adapter/http"
	"studyplanner/internal/adapter/http/handlers"
	httpmiddleware "studyplanner/internal/adapter/http/middleware"
	"studyplanner/internal/adapter/mail"
	"studyplanner/internal/adapter/session"
	"studyplanner/internal/app/service"
	"studyplanner/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	applied, err := dbadapter.Migrate(context.Background(), db)
	if err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("driver", cfg.DbDriver), zap.Int("applied_migrations", applied))

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret, err = session.RandomSecret()
		if err != nil {
			logger.Fatal("failed to generate session secret", zap.Error(err))
		}
		logger.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}
	sessions := session.NewTokenManager(secret, cfg.SessionTTL)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
	})

	authService := service.NewAuthService(dbadapter.NewUserRepository(db))
	taskService := service.NewTaskService(dbadapter.NewTaskRepository(db))
	reportService := service.NewReportService(taskService, mailer, cfg.MailSubject)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.SessionMiddleware(sessions), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db),
		Auth:   handlers.NewAuthHandler(authService, sessions, cfg.CookieSecure),
		Tasks:  handlers.NewTaskHandler(taskService, reportService),
		Web:    handlers.NewWebHandler(authService, taskService, reportService, sessions, cfg.CookieSecure),
	})

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
