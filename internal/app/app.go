package app

import (
	"context"
	"errors"
	"linuxplus_backend/internal/config"
	"linuxplus_backend/internal/content"
	"linuxplus_backend/internal/controller"
	"linuxplus_backend/internal/repository"
	"linuxplus_backend/internal/repository/mongostore"
	"linuxplus_backend/internal/service"
	"linuxplus_backend/pkg/configwatcher"
	"linuxplus_backend/pkg/database"
	"linuxplus_backend/pkg/logger"
	"linuxplus_backend/pkg/monitoring"
	"linuxplus_backend/pkg/security"
	"linuxplus_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Mongo           *mongo.Client
	services        *services
	// ctx 在 Close 时取消，用于结束后台协程
	ctx             context.Context
	configCallbacks []func(*config.Config)
	closers         []func(context.Context) error
}

// Stores 是服务层依赖的持久化实现，gorm 或 mongo 二选一
type Stores struct {
	Users    service.UserStore
	Progress service.ProgressStore
	Results  service.QuizResultStore
	Ping     controller.Pinger
}

type services struct {
	auth     *service.AuthService
	content  *service.ContentService
	quiz     *service.QuizService
	progress *service.ProgressService
	ai       *service.AIService
}

type controllers struct {
	auth     *controller.AuthController
	content  *controller.ContentController
	quiz     *controller.QuizController
	progress *controller.ProgressController
	ai       *controller.AIController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func GormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:    repository.NewUserRepository(db),
		Progress: repository.NewProgressRepository(db),
		Results:  repository.NewQuizResultRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

func MongoStores(client *mongo.Client, db *mongo.Database) *Stores {
	return &Stores{
		Users:    mongostore.NewUserStore(db),
		Progress: mongostore.NewProgressStore(db),
		Results:  mongostore.NewQuizResultStore(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	}
}

func (a *App) initServices(st *Stores, cfg *config.Config) *services {
	bank := content.MustLoad()

	s := &services{
		auth:     service.NewAuthService(st.Users, cfg),
		content:  service.NewContentService(bank),
		quiz:     service.NewQuizService(bank, st.Results, st.Progress),
		progress: service.NewProgressService(st.Progress, st.Results),
		ai:       service.NewAIService(cfg.AI, service.DefaultProviders, nil),
	}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
	})

	return s
}

func (a *App) initControllers(s *services, st *Stores, cfg *config.Config) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		content:  controller.NewContentController(s.content),
		quiz:     controller.NewQuizController(s.quiz),
		progress: controller.NewProgressController(s.progress),
		ai:       controller.NewAIController(s.ai),
		health:   controller.NewHealthController(st.Ping, cfg.Database.Driver),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, 6000, time.Minute)) // 每个IP每分钟6000次请求

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build 组装服务、控制器和路由，不负责打开数据库
func Build(cfg *config.Config, st *Stores) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, ctx: ctx}
	app.closers = append(app.closers, func(context.Context) error {
		cancel()
		return nil
	})

	services := app.initServices(st, cfg)
	app.services = services
	controllers := app.initControllers(services, st, cfg)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	var (
		st     *Stores
		gormDB *gorm.DB
		client *mongo.Client
	)

	if cfg.Database.Driver == config.DriverMongo {
		c, db, err := database.InitMongo(&cfg.Mongo)
		if err != nil {
			logger.Log.Fatal("Failed to initialize mongo", zap.Error(err))
		}
		client = c
		st = MongoStores(c, db)
	} else {
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		gormDB = db
		st = GormStores(db)
	}

	app := Build(cfg, st)
	app.DB = gormDB
	app.Mongo = client
	if client != nil {
		app.closers = append(app.closers, client.Disconnect)
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("linuxplus-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.closers = append(app.closers, tp.Shutdown)
	}

	return app
}

// Close 释放数据库连接和 tracer
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Log.Error("Failed to release resource", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 配置热更新
	if a.Config.Server.WatchConfig {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.Path, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}
