package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"YogaStore/internal/catalog"
	"YogaStore/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8082")

	store, err := openStore(log)
	if err != nil {
		log.Fatal("open store failed", zap.Error(err))
	}

	s := &catalog.Server{
		Log:   log,
		Store: store,
	}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
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

func openStore(log *zap.Logger) (catalog.Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("DATABASE_URL not set, using in-memory store")
		return catalog.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return catalog.NewPostgresStore(db), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
