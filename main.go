package main

import (
	"github.com/wfunc/fruitclash/config"
	"github.com/wfunc/fruitclash/logger"
	"github.com/wfunc/fruitclash/persistence"
	"github.com/wfunc/fruitclash/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.Init(cfg.LogDev)
	defer logger.Sync()

	// Initialize the optional round-record store. Room state itself is
	// in-memory only and never survives a restart.
	store, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, store)

	// Start Server
	logger.Log.Infof("Starting fruitclash server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config) (persistence.Store, error) {
	if !cfg.Database.Enabled {
		return persistence.NewNoopStore(), nil
	}

	pg := cfg.Database.Postgres
	switch cfg.Database.Driver {
	case "sql":
		return persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
}
