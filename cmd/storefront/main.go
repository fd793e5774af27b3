package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"YogaStore/internal/storefront"
	"YogaStore/pkg/kit"
)

// Smoke client: signs in against a running gateway, fills a cart from the
// catalog and optionally checks out. Useful for poking a deployed stack
// without the app frontend.
func main() {
	log := kit.NewLogger("storefront")
	defer func() { _ = log.Sync() }()

	gatewayURL := getenv("GATEWAY_URL", "http://localhost:8080")
	email := getenv("STORE_EMAIL", "ann@example.com")
	password := getenv("STORE_PASSWORD", "yoga-pass-1")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := storefront.NewClient(storefront.NewHTTPBackend(gatewayURL), log)
	defer client.Close()

	if err := client.SignIn(ctx, email, password); err != nil {
		log.Info("sign in failed, registering", zap.Error(err))
		err = client.SignUp(ctx, storefront.Registration{
			FirstName:       "Ann",
			LastName:        "Walker",
			Email:           email,
			PhoneNumber:     "07700900000",
			Password:        password,
			ConfirmPassword: password,
		})
		if err != nil {
			log.Fatal("register failed", zap.Error(err))
		}
	}
	log.Info("signed in", zap.String("user_id", client.Session.Current()))

	courses, err := client.Courses(ctx)
	if err != nil {
		log.Fatal("list courses failed", zap.Error(err))
	}
	log.Info("catalog", zap.Int("courses", len(courses)))

	for _, course := range courses {
		classes, err := client.Classes(ctx, course.ID)
		if err != nil {
			log.Fatal("list classes failed", zap.String("course_id", course.ID), zap.Error(err))
		}
		if len(classes) > 0 {
			client.AddClass(course, classes[0])
		}
	}

	client.Sync.Flush()
	log.Info("cart", zap.Int("lines", client.Cart.Len()), zap.Float64("total", client.Cart.Total()))

	if os.Getenv("CHECKOUT") == "" {
		return
	}

	profile, err := client.Profile(ctx)
	if err != nil {
		log.Fatal("fetch profile failed", zap.Error(err))
	}

	orderID, err := client.PlaceOrder(ctx, storefront.Customer{
		Name:        profile.FirstName + " " + profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		Email:       profile.Email,
	})
	if err != nil {
		log.Fatal("checkout failed", zap.Error(err))
	}
	log.Info("order placed", zap.String("order_id", orderID))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
