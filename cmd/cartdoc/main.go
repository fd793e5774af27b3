package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"YogaStore/internal/auth"
	"YogaStore/internal/cartdoc"
	"YogaStore/pkg/kit"
)

func main() {
	service := "cartdoc"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8084")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")

	store, err := openStore(log)
	if err != nil {
		log.Fatal("open store failed", zap.Error(err))
	}

	s := &cartdoc.Server{
		Log:   log,
		Store: store,
	}

	reg := prometheus.NewRegistry()
	h := cartdoc.NewHandler(s, cartdoc.HTTPDeps{
		Log:      log,
		Service:  service,
		Registry: reg,
		JWT:      auth.NewTokenMaker(jwtSecret),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(log *zap.Logger) (cartdoc.Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("DATABASE_URL not set, using in-memory store")
		return cartdoc.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return cartdoc.NewPostgresStore(db), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
