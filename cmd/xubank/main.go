package main

import (
	"XuBank/internal/adapters/audit"
	"XuBank/internal/adapters/eventbus"
	"XuBank/internal/adapters/postgres"
	"XuBank/internal/adapters/security"
	"XuBank/internal/console"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"XuBank/internal/shared/config"
	"XuBank/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "XuBank/internal/console/handlers"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("audit_log", cfg.Audit.LogFile).
		Bool("audit_db", cfg.Postgres.URL != "").
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Audit pipeline: publisher -> bus -> file (+ database)
	bus := eventbus.NewInMemoryEventBus(&baseLogger)

	logFile, err := audit.OpenLogFile(cfg.Audit.LogFile)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to open audit log")
	}
	defer logFile.Close()
	audit.Subscribe(bus, audit.NewLogWriter(logFile).Handle)

	var auditLog ports.AuditRepository
	if cfg.Postgres.URL != "" {
		secSvc, err := security.NewAuditCipher(cfg.EncryptionKey, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize audit cipher")
		}
		db, err := postgres.NewDB(ctx, cfg.Postgres.URL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to prepare database")
		}
		auditLog = postgres.NewAuditRepository(db, secSvc, &baseLogger)
		audit.Subscribe(bus, audit.NewStoreWriter(auditLog, &baseLogger).Handle)
	}

	sink := audit.NewPublisher(bus, &baseLogger)
	defer bus.Close()

	// 4. Core
	creds, err := security.NewCredentialService(security.Argon2Params{
		Time:      cfg.Argon2.Time,
		MemoryKiB: cfg.Argon2.MemoryKiB,
		Threads:   cfg.Argon2.Threads,
		KeyLen:    security.DefaultArgon2Params.KeyLen,
	}, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize credential service")
	}
	bank := ledger.NewBank(creds, sink, ledger.DefaultEnvironment())

	// 5. Console
	router := console.NewMenuRouter(sink, &baseLogger)
	console.RegisterAllHandlers(router, bank, auditLog, &baseLogger)

	session := console.NewSession(os.Stdin, os.Stdout)
	baseLogger.Info().Str("session_id", session.ID.String()).Msg("Console session started")
	session.Say("Welcome to XuBank!")
	sink.LogEvent("APPLICATION_STARTED", "Console application started")

	done := make(chan error, 1)
	go func() { done <- router.Run(ctx, session) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		baseLogger.Warn().Err(err).Msg("Console session ended early")
	}

	sink.LogEvent("APPLICATION_STOPPED", "Console application stopped")
	session.Say("System shut down safely.")
}
