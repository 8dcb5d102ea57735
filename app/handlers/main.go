package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	cfgPkg "github.com/contactkeeper/contacts-api/app/config"
	"github.com/contactkeeper/contacts-api/app/logger"
	"github.com/contactkeeper/contacts-api/app/mailer"
	"github.com/contactkeeper/contacts-api/app/services"
	"github.com/contactkeeper/contacts-api/app/store"
	"github.com/contactkeeper/contacts-api/app/uploads"
)

func main() {
	logger.Init()
	cfgPkg.Load()

	jwtSecret := cfgPkg.GetString("JWT_SECRET", "")
	if jwtSecret == "" {
		logger.Logger.Fatal().Msg("JWT_SECRET is required")
	}

	dbAddr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfgPkg.GetString("POSTGRES_USER", "postgres"),
		cfgPkg.GetString("POSTGRES_PASSWORD", "postgres"),
		cfgPkg.GetString("POSTGRES_HOST", "localhost"),
		cfgPkg.GetString("POSTGRES_PORT", "5432"),
		cfgPkg.GetString("POSTGRES_DB", "contacts"),
		cfgPkg.GetString("POSTGRES_SSLMODE", "disable"),
	)

	cfg := config{
		addr: cfgPkg.GetString("ADDR", ":8000"),
		db: dbConfig{
			addr:         dbAddr,
			maxOpenConns: cfgPkg.GetInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns: cfgPkg.GetInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:  cfgPkg.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}
	if origins := cfgPkg.GetString("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.corsOrigins = strings.Split(origins, ",")
	}

	db, err := cfgPkg.NewDB(cfg.db.addr, cfg.db.maxOpenConns, cfg.db.maxIdleConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()
	logger.Logger.Info().Msg("postgres connection pool established")

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Migrate(migrateCtx, db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	storage := store.NewStorage(db)

	creds := services.NewCredentialService(
		jwtSecret,
		cfgPkg.GetDuration("ACCESS_TOKEN_TTL", services.DefaultAccessTokenTTL),
	)

	baseURL := cfgPkg.GetString("PUBLIC_BASE_URL", "http://localhost:8000")

	var sender mailer.Sender
	smtpHost := cfgPkg.GetString("SMTP_HOST", "")
	if smtpHost != "" {
		smtpSender, err := mailer.NewSMTPSender(
			smtpHost,
			cfgPkg.GetString("SMTP_USER", ""),
			cfgPkg.GetString("SMTP_PASSWORD", ""),
			cfgPkg.GetString("SMTP_FROM", "Contacts <no-reply@localhost>"),
			cfgPkg.GetString("SMTP_SKIP_VERIFY", "false") == "true",
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("failed to configure smtp")
		}
		sender = smtpSender
		logger.Logger.Info().Str("host", smtpHost).Msg("smtp sender configured")
	} else {
		sender = &mailer.LogSender{Log: logger.Logger}
		logger.Logger.Warn().Msg("SMTP_HOST not set, verification mails will only be logged")
	}

	var uploader uploads.Uploader = uploads.Disabled{}
	cloudName := cfgPkg.GetString("CLOUDINARY_CLOUD_NAME", "")
	if cloudName != "" {
		uploader, err = uploads.NewCloudinaryUploader(
			cloudName,
			cfgPkg.GetString("CLOUDINARY_API_KEY", ""),
			cfgPkg.GetString("CLOUDINARY_API_SECRET", ""),
			cfgPkg.GetString("CLOUDINARY_FOLDER", "avatars"),
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("failed to configure cloudinary")
		}
		logger.Logger.Info().Str("cloud", cloudName).Msg("cloudinary uploader configured")
	} else {
		logger.Logger.Warn().Msg("CLOUDINARY_CLOUD_NAME not set, avatar uploads disabled")
	}

	app := &application{
		config:   cfg,
		store:    storage,
		contacts: services.NewContactService(storage),
		users:    services.NewUserService(storage, creds, sender, uploader, baseURL),
		creds:    creds,
	}

	if redisAddr := cfgPkg.GetString("REDIS_ADDR", ""); redisAddr != "" {
		redisClient, err := cfgPkg.NewRedisClient(
			redisAddr,
			cfgPkg.GetString("REDIS_PASSWORD", ""),
			cfgPkg.GetInt("REDIS_DB", 0),
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		app.redisClient = redisClient
		logger.Logger.Info().Str("addr", redisAddr).Msg("redis rate limiter enabled")
	} else {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
	}

	mux := app.mount()
	if err := app.runWithGracefulShutdown(mux); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server error")
	}
}
