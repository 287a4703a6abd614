package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	"github.com/BruksfildServices01/wedding-vendors/internal/config"
	dbpkg "github.com/BruksfildServices01/wedding-vendors/internal/db"
	"github.com/BruksfildServices01/wedding-vendors/internal/domain/user"
	"github.com/BruksfildServices01/wedding-vendors/internal/domain/vendor"
	"github.com/BruksfildServices01/wedding-vendors/internal/infra/repository"
	"github.com/BruksfildServices01/wedding-vendors/internal/infra/storage"
	"github.com/BruksfildServices01/wedding-vendors/internal/routes"
	"github.com/BruksfildServices01/wedding-vendors/internal/upload"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users         user.Repository
	caterers      vendor.CatererRepository
	photographers vendor.PhotographerRepository
	audit         audit.Repository
	close         func()
}

func openStores(cfg *config.Config) stores {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, database := dbpkg.NewMongo(cfg)
		vendors := repository.NewVendorMongoRepository(database)
		return stores{
			users:         repository.NewUserMongoRepository(database),
			caterers:      vendors,
			photographers: vendors,
			audit:         repository.NewAuditMongoRepository(database),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}

	case config.DriverMemory:
		log.Println("using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{
			users:         mem,
			caterers:      mem,
			photographers: mem,
			audit:         mem,
			close:         func() {},
		}

	case config.DriverPostgres:
		db := dbpkg.NewDB(cfg)
		vendors := repository.NewVendorGormRepository(db)
		return stores{
			users:         repository.NewUserGormRepository(db),
			caterers:      vendors,
			photographers: vendors,
			audit:         repository.NewAuditGormRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}

	default:
		log.Fatalf("unknown DB_DRIVER %q", cfg.DBDriver)
		return stores{}
	}
}

// openStorage returns the object store and, for local storage, the
// directory served under /uploads.
func openStorage(cfg *config.Config) (storage.Storage, string) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		s3, err := storage.NewS3(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Prefix:          upload.DefaultPrefix,
		})
		if err != nil {
			log.Fatalf("failed to configure S3 storage: %v", err)
		}
		return s3, ""

	case config.StorageLocal:
		return storage.NewLocal(cfg.UploadDir), cfg.UploadDir

	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
		return nil, ""
	}
}

func main() {

	cfg := config.Load()
	if cfg.IsProduction() {
		if cfg.JWTSecret == config.DefaultJWTSecret {
			log.Fatal("JWT_SECRET must be set in production")
		}
		gin.SetMode(gin.ReleaseMode)
	}

	st := openStores(cfg)
	defer st.close()

	objects, uploadDir := openStorage(cfg)

	var limiter auth.LoginLimiter = auth.NopLoginLimiter{}
	if rdb := dbpkg.NewRedis(cfg); rdb != nil {
		defer rdb.Close()
		limiter = auth.NewRedisLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	}

	dispatcher := audit.NewDispatcher(audit.New(st.audit))

	r := gin.Default()

	routes.RegisterRoutes(r, cfg, routes.Dependencies{
		Users:         st.users,
		Caterers:      st.caterers,
		Photographers: st.photographers,
		Audit:         dispatcher,
		AuditLogs:     st.audit,
		Tokens:        auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Limiter:       limiter,
		Uploads:       upload.NewHandler(objects, upload.DefaultPrefix),
		UploadDir:     uploadDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Printf("audit shutdown: %v", err)
	}
}
