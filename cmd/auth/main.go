package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"YogaStore/internal/auth"
	"YogaStore/pkg/kit"
)

func main() {
	service := "auth"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8081")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")

	store, err := openStore(log)
	if err != nil {
		log.Fatal("open store failed", zap.Error(err))
	}

	s := &auth.Server{
		Log:   log,
		Store: store,
		JWT:   auth.NewTokenMaker(jwtSecret),
	}

	reg := prometheus.NewRegistry()
	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(log *zap.Logger) (auth.UserStore, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("DATABASE_URL not set, using in-memory store")
		return auth.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return auth.NewPostgresStore(db), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
