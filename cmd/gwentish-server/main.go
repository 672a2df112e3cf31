package main

import (
	"github.com/gin-gonic/gin"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/api"
	"github.com/mtarnawa/gwentish/internal/catalog"
	"github.com/mtarnawa/gwentish/internal/config"
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/logging"
	gwnet "github.com/mtarnawa/gwentish/internal/net"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config", err, nil)
	}
	if _, err := ai.ParseDifficulty(cfg.BotDifficulty); err != nil {
		logging.Fatal("load config", err, nil)
	}
	leaderRule, err := game.ParseRoundLeaderRule(cfg.RoundLeader)
	if err != nil {
		logging.Fatal("load config", err, nil)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logging.Fatal("load catalog", err, logging.Fields{"path": cfg.CatalogPath})
	}
	logging.Info("catalog loaded", logging.Fields{
		"path":  cfg.CatalogPath,
		"cards": len(cat.Cards()),
		"decks": len(cat.Decks()),
	})

	// With a database configured, sessions resolve cards through sqlite;
	// the YAML stays the seed source.
	var source game.CardSource
	if cfg.CatalogDB != "" {
		store, err := catalog.OpenStore(cfg.CatalogDB)
		if err != nil {
			logging.Fatal("open catalog db", err, logging.Fields{"path": cfg.CatalogDB})
		}
		if err := store.Seed(cat); err != nil {
			logging.Fatal("seed catalog db", err, nil)
		}
		source = store
		logging.Info("catalog db ready", logging.Fields{"path": cfg.CatalogDB})
	}

	registry := gwnet.NewRegistry()

	router := gin.Default()
	apiHandler := &api.Handler{
		Registry:          registry,
		Catalog:           cat,
		Source:            source,
		HandSize:          cfg.HandSize,
		Seed:              cfg.Seed,
		DefaultDifficulty: cfg.BotDifficulty,
		LeaderRule:        leaderRule,
	}
	apiHandler.Register(router)

	wsServer := &gwnet.Server{
		Registry:          registry,
		Catalog:           cat,
		Source:            source,
		HandSize:          cfg.HandSize,
		Seed:              cfg.Seed,
		DefaultDifficulty: cfg.BotDifficulty,
		LeaderRule:        leaderRule,
	}
	router.GET("/ws", gin.WrapH(wsServer.Handler()))

	logging.Info("listening", logging.Fields{"addr": cfg.Addr})
	if err := router.Run(cfg.Addr); err != nil {
		logging.Fatal("server", err, nil)
	}
}
