package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dlemos/tenantshift/internal/api"
	"github.com/dlemos/tenantshift/internal/config"
	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("tenantshift %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	cfg := config.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	server := &api.Server{
		Connections: models.NewConnectionStore(),
		Jobs:        models.NewJobStore(),
		Results:     api.NewResultStore(),
		Logger:      logger,
	}

	// Load pre-configured connections from config file
	for _, cc := range cfg.Connections {
		conn := &models.Connection{
			Name:     cc.Name,
			Scheme:   cc.Scheme,
			Host:     cc.Host,
			Port:     cc.Port,
			APIKey:   cc.APIKey,
			Insecure: cc.Insecure,
		}
		if conn.Scheme == "" {
			conn.Scheme = "https"
		}
		if conn.Port == 0 {
			if conn.Scheme == "https" {
				conn.Port = 443
			} else {
				conn.Port = 80
			}
		}
		server.Connections.Create(conn)
		logger.Info("loaded connection",
			zap.String("name", conn.Name),
			zap.String("base_url", conn.BaseURL()),
		)

		checkConnection(server.Connections, conn, logger)
	}

	handler := api.NewRouter(server)

	logger.Info("tenantshift starting",
		zap.String("version", version),
		zap.String("listen", cfg.Listen),
	)
	if err := http.ListenAndServe(cfg.Listen, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// checkConnection verifies connectivity and credentials for a configured
// connection and records the results on the connection.
func checkConnection(store *models.ConnectionStore, conn *models.Connection, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := platform.NewClient(conn)

	pingStatus, pingError := "ok", ""
	if err := platform.Ping(ctx, client); err != nil {
		pingStatus = "error"
		pingError = err.Error()
		logger.Warn("ping failed", zap.String("name", conn.Name), zap.Error(err))
	} else {
		logger.Info("ping ok", zap.String("name", conn.Name))
	}

	authStatus, authError := "unknown", ""
	if pingStatus == "ok" {
		switch {
		case conn.APIKey == "":
			authStatus = "error"
			authError = "no API key configured"
			logger.Warn("auth failed", zap.String("name", conn.Name), zap.String("error", authError))
		default:
			if err := platform.CheckAuth(ctx, client); err != nil {
				authStatus = "error"
				authError = err.Error()
				logger.Warn("auth failed", zap.String("name", conn.Name), zap.Error(err))
			} else {
				authStatus = "ok"
				logger.Info("auth ok", zap.String("name", conn.Name))

				// Discovery: record platform version (only after auth succeeds)
				if v, err := platform.DiscoverVersion(ctx, client); err == nil {
					store.SetVersion(conn.ID, v)
					logger.Info("platform version", zap.String("name", conn.Name), zap.String("version", v))
				}
			}
		}
	}
	store.SetHealth(conn.ID, pingStatus, pingError, authStatus, authError)
}
