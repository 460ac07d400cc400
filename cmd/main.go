package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/handlers"
	"diet_tracker/internal/logger"
	"diet_tracker/internal/openfoodfacts"
	"diet_tracker/internal/repository"
	"diet_tracker/internal/server"
	"diet_tracker/internal/service"
	"diet_tracker/internal/translate"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml before the logger so log.level from config applies
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(logLevel())

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, buildDeps(log))
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// logLevel reads log.level from config, defaulting to info.
func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.AutomaticEnv() // secrets (e.g. chat API key) come from the environment
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "meals.db")
		dbPath = "meals.db"
	}
	return repository.InitDB(dbPath)
}

// buildDeps constructs the external clients from configuration.
func buildDeps(log *logger.Logger) service.Deps {
	apiKeyEnv := viper.GetString("chat.api_key_env")
	if apiKeyEnv == "" {
		apiKeyEnv = "OPENAI_API_KEY"
	}

	return service.Deps{
		FoodAPI:    openfoodfacts.NewClient(viper.GetString("openfoodfacts.base_url"), log),
		Translator: translate.NewHTTPTranslator(viper.GetString("translate.base_url")),
		Completer: chat.NewClient(
			viper.GetString("chat.base_url"),
			viper.GetString("chat.model"),
			os.Getenv(apiKeyEnv),
		),
		AuthConfig: service.AuthConfig{
			SigningKey: viper.GetString("auth.signing_key"),
			TokenTTL:   viper.GetDuration("auth.token_ttl"),
		},
		Langs: service.LanguageConfig{
			Display: viper.GetString("translate.display_lang"),
			Query:   viper.GetString("translate.query_lang"),
		},
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
