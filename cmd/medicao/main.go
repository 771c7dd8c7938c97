// cmd/medicao/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fabriciogama26/FM-Controle/internal/api/handlers"
	"github.com/fabriciogama26/FM-Controle/internal/api/middleware"
	"github.com/fabriciogama26/FM-Controle/internal/api/responses"
	"github.com/fabriciogama26/FM-Controle/internal/config"
	"github.com/fabriciogama26/FM-Controle/internal/core/medicao"
	"github.com/fabriciogama26/FM-Controle/internal/sqlite"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Falha ao carregar configuração: ", err)
	}

	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()
	responses.SetLogger(logger)

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Fatal("Falha ao conectar ao banco de dados", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Falha ao migrar o banco de dados", zap.Error(err))
	}

	repo := sqlite.NewMedicaoRepository(db)
	medicaoService := medicao.NewService(
		medicao.WithSheetPolicy(medicao.PolicyByName(cfg.Extract.SheetPolicy, cfg.Extract.SheetName)),
		medicao.WithDateEpoch(medicao.EpochByName(cfg.Extract.DateEpoch)),
	)
	medicaoHandler := handlers.NewMedicaoHandler(medicaoService, repo)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.POST("/upload", medicaoHandler.HandleUpload)
		api.GET("/dados", medicaoHandler.HandleList)
		api.PUT("/dados/:id", medicaoHandler.HandleUpdate)
		api.DELETE("/dados/:id", medicaoHandler.HandleDelete)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "medicao-service"})
	})

	if cfg.Server.StaticDir != "" {
		router.Static("/public", cfg.Server.StaticDir)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Endpoint não encontrado",
			"path":    c.Request.URL.Path,
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("🚀 Medição Service iniciado", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Falha ao iniciar o servidor", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := logCfg.Build()
	if err != nil {
		log.Fatal("Falha ao inicializar o logger: ", err)
	}
	return logger
}
