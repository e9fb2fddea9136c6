package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shulsoft/gabbai/internal/backup"
	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/logging"
	"github.com/shulsoft/gabbai/internal/server"
)

func main() {
	port := os.Getenv("GABBAI_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("GABBAI_DB_PATH")
	if dbPath == "" {
		dbPath = "gabbai.db"
	}

	logger := logging.Setup(os.Getenv("GABBAI_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("GABBAI_S3_ENDPOINT"),
			Bucket:    os.Getenv("GABBAI_S3_BUCKET"),
			Region:    os.Getenv("GABBAI_S3_REGION"),
			AccessKey: os.Getenv("GABBAI_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("GABBAI_S3_SECRET_KEY"),
		},
		DBPath:       dbPath,
		Passphrase:   os.Getenv("GABBAI_BACKUP_PASSPHRASE"),
		ScheduleHour: envInt("GABBAI_BACKUP_HOUR", 3),
	}
	if d := envInt("GABBAI_BACKUP_RETENTION_DAYS", 0); d > 0 {
		backupCfg.RetentionDays = d
	}

	srv := server.New(db, backupCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	// Prune expired sessions hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Gabbai running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
