package main

import (
	"net/http"

	"gestionrecursos/config"
	"gestionrecursos/config/database"
	"gestionrecursos/internal/auth"
	"gestionrecursos/internal/resource/repository"
	"gestionrecursos/pkg/logger"
	"gestionrecursos/router"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Sugar.Fatal("JWT_SECRET environment variable not set")
	}

	db := database.Connect(cfg)
	defer db.Close()

	store := repository.NewPostgresStore(db)
	verifier := auth.NewJWTVerifier([]byte(cfg.JWTSecret))

	handler := router.Setup(verifier, store, cfg.FrontendOrigin)

	logger.Sugar.Infof("Backend listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
