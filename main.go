package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/config"
	"github.com/santabrisa/crm-server/middleware"
	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/routes"
	"github.com/santabrisa/crm-server/service"
	"github.com/santabrisa/crm-server/utils"
)

func main() {
	// Inicializar logging
	utils.InitLogger()

	// Cargar configuracion
	cfg := config.LoadConfig()

	// Modo de Gin
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Inicializar base de datos
	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("No se pudo conectar a MongoDB")
	}

	defer repository.CloseMongoDB()

	// Crear instancia de Gin
	router := gin.New()

	// Middlewares globales
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())
	router.Use(middleware.OperationLoggerMiddleware())

	// Registrar rutas
	routes.RegisterRoutes(router)

	// Inicializar datos del sistema
	utils.Logger.Info().Msg("Iniciando inicializacion del sistema...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("Error al inicializar colecciones")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("Error al inicializar cuenta de administrador")
	}
	utils.Logger.Info().Msg("Inicializacion del sistema completada")

	// Barrido diario de cartera
	service.ScheduleDailyTaskAt(cfg.SweepHour, 0, 0, service.SweepCartera)

	// Servidor HTTP
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Arrancar servidor
	go func() {
		utils.Logger.Info().Msgf("Servidor escuchando en el puerto: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("Error al arrancar el servidor")
		}
	}()

	// Apagado ordenado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("Cerrando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Error al cerrar el servidor")
	}

	utils.Logger.Info().Msg("Servidor cerrado correctamente")
}
