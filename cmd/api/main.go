package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/core/cache"
	"go-news-gateway/internal/core/config"
	"go-news-gateway/internal/core/database"
	"go-news-gateway/internal/core/logger"
	"go-news-gateway/internal/core/server"
	"go-news-gateway/internal/fallback"
	"go-news-gateway/internal/repo"
	"go-news-gateway/internal/service"
	"go-news-gateway/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, cleanup := newLogger(cfg)
	defer cleanup()
	restore := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer restore()

	// 数据库：只校验配置，不建连接；DSN/驱动不对才 Fatal
	db := mustOpenDB(cfg, log)
	log.Info("database configured", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		migrate(ctx, cfg, db, log)
	}
	store := repo.NewStore(db, cfg.DB.QueryTimeout())

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	}

	// 分类缓存可选
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		c.LoadTimeout = cfg.DB.QueryTimeout()
		defer c.Close()
		log.Info("category cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	fb := fallback.New()
	r := router.NewAPIEngine(router.Deps{
		Log:  log,
		Gate: auth.NewGate(jwter),
		News: service.NewNewsService(store, fb, service.NewsOptions{
			Fallback:     cfg.Content.Fallback,
			DefaultLimit: cfg.Content.DefaultLimit,
			MaxLimit:     cfg.Content.MaxLimit,
		}, log),
		Categories: service.NewCategoryService(store, categoryFallback(cfg, fb), c, cfg.Redis.CategoryTTL(), log),
		Auth:       service.NewAuthService(store, jwter, log),
		BasePath:   cfg.App.HTTP.BasePath,
		Limits:     cfg.Limits,
		CORS:       cfg.CORS.AllowOrigins,
	})

	// HTTP Server
	errLog, err := logger.ToStdLogger(log, zapcore.WarnLevel)
	if err != nil {
		log.Fatal("std logger", zap.Error(err))
	}
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		errLog,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("news api starting",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+cfg.App.HTTP.BasePath),
		zap.Bool("fallback", cfg.Content.Fallback),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("news api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("news api stopped gracefully")
}

// migrate 库不可达时：开了兜底就后台重试，读接口先走静态内容；没开兜底直接退出
func migrate(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) {
	err := repo.Migrate(db.WithContext(ctx))
	if err == nil {
		log.Info("automigrate done")
		return
	}
	if !cfg.Content.Fallback {
		log.Fatal("automigrate failed", zap.Error(err))
	}
	log.Warn("automigrate failed, retrying in background", zap.Error(err))
	go func() {
		err := repo.MigrateUntil(ctx, db, 15*time.Second, func(attempt int, err error) {
			log.Warn("automigrate retry failed", zap.Int("attempt", attempt), zap.Error(err))
		})
		if err == nil {
			log.Info("automigrate done")
		}
	}()
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if !cfg.Log.File.Enable {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	f := cfg.Log.File
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Filename:   f.Filename,
		MaxSizeMB:  f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAgeDays: f.MaxAgeDays,
		Compress:   f.Compress,
	})
}

// categoryFallback content.fallback=false 时分类列表也不降级
func categoryFallback(cfg *config.Config, fb *fallback.Provider) *fallback.Provider {
	if !cfg.Content.Fallback {
		return nil
	}
	return fb
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
