package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/roster/internal/api"
	"github.com/vytor/roster/internal/auth"
	"github.com/vytor/roster/internal/avatar"
	"github.com/vytor/roster/internal/config"
	"github.com/vytor/roster/internal/db"
	"github.com/vytor/roster/internal/jobs"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/repository"
	mongorepo "github.com/vytor/roster/internal/repository/mongo"
	"github.com/vytor/roster/internal/repository/postgres"
	"github.com/vytor/roster/internal/repository/sqlite"
	"github.com/vytor/roster/internal/services"
	"github.com/vytor/roster/internal/storage"
	"github.com/vytor/roster/internal/storage/gcs"
	"github.com/vytor/roster/internal/storage/memory"
	"github.com/vytor/roster/internal/storage/minio"
	"github.com/vytor/roster/internal/storage/s3"
	"github.com/vytor/roster/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Roster Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("record_store=%s", cfg.RecordStore)
	log.Debug("object_store=%s bucket=%s", cfg.ObjectStore, cfg.AvatarBucket)
	log.Debug("storage_public_url=%s", cfg.StoragePublicURL)
	log.Debug("sync_work_duration=%v", cfg.SyncWorkDuration)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)
	log.Debug("edit_fail_open=%t", cfg.EditFailOpen)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	athleteRepo, closeRecords, err := openRecordStore(startupCtx, cfg, log)
	if err != nil {
		startupCancel()
		log.Error("failed to open record store: %v", err)
		os.Exit(1)
	}
	defer closeRecords()

	objects, closeObjects, err := openObjectStore(startupCtx, cfg, log)
	startupCancel()
	if err != nil {
		log.Error("failed to open object store: %v", err)
		closeRecords()
		os.Exit(1)
	}
	defer closeObjects()

	var verifierOpts []auth.JWTOption
	if cfg.JWTAudience != "" {
		verifierOpts = append(verifierOpts, auth.WithAudience(cfg.JWTAudience))
	}
	verifier := auth.NewJWTVerifier(cfg.JWTSecret, verifierOpts...)

	// Initialize worker pool
	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	jobQueue := jobs.NewWorkerQueue(syncPool, cfg.SyncWorkDuration)

	// Initialize services
	srv := &api.Server{
		AthleteService:     services.NewAthleteService(athleteRepo),
		EditService:        services.NewEditService(athleteRepo, avatar.NewPipeline(objects, cfg.StoragePublicURL), cfg.EditFailOpen),
		SyncService:        services.NewSyncService(verifier, jobQueue),
		Verifier:           verifier,
		AthleteRepo:        athleteRepo,
		MaxAvatarBytes:     int64(cfg.MaxAvatarBytes),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)

	// Configure HTTP server. WriteTimeout leaves room for the sync work.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SyncWorkDuration + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping sync pool")
	cancel()
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Roster Server Stopped")
	log.Info("===========================================")
}

func openRecordStore(ctx context.Context, cfg config.Config, log *logger.Logger) (repository.AthleteRepository, func(), error) {
	switch cfg.RecordStore {
	case config.RecordStorePostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("record store: postgres")
		return postgres.NewAthleteRepository(pool), pool.Close, nil

	case config.RecordStoreMongo:
		client, err := mongorepo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Warn("mongo disconnect: %v", err)
			}
		}
		repo, err := mongorepo.NewAthleteRepository(ctx, client.Database(cfg.MongoDatabase))
		if err != nil {
			disconnect()
			return nil, nil, err
		}
		log.Info("record store: mongo database=%s", cfg.MongoDatabase)
		return repo, disconnect, nil

	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("record store: sqlite")
		return sqlite.NewAthleteRepository(database.DB), func() {
			log.Debug("closing database connection")
			database.Close()
		}, nil
	}
}

func openObjectStore(ctx context.Context, cfg config.Config, log *logger.Logger) (storage.ObjectStore, func(), error) {
	noop := func() {}

	switch cfg.ObjectStore {
	case config.ObjectStoreMinio:
		store, err := minio.New(minio.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.AvatarBucket,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		log.Info("object store: minio endpoint=%s", cfg.MinioEndpoint)
		return store, noop, nil

	case config.ObjectStoreS3:
		store, err := s3.New(ctx, s3.Options{
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Bucket:   cfg.AvatarBucket,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("object store: s3 region=%s", cfg.S3Region)
		return store, noop, nil

	case config.ObjectStoreGCS:
		store, err := gcs.New(ctx, cfg.AvatarBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info("object store: gcs")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn("gcs close: %v", err)
			}
		}, nil

	default:
		log.Warn("object store: in-memory, avatars are lost on restart")
		return memory.New(cfg.AvatarBucket), noop, nil
	}
}
