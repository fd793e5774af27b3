package storefront_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"YogaStore/internal/storefront"
)

func TestSignUpValidatesBeforeBackend(t *testing.T) {
	backend := newFakeBackend()
	c := storefront.NewClient(backend, zap.NewNop())
	defer c.Close()

	cases := []struct {
		name string
		reg  storefront.Registration
	}{
		{"missing fields", storefront.Registration{Email: "a@example.com", Password: "pw"}},
		{"password mismatch", storefront.Registration{
			FirstName: "Ann", LastName: "Lee", Email: "a@example.com",
			PhoneNumber: "0123", Password: "password1", ConfirmPassword: "password2",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.SignUp(context.Background(), tc.reg)
			if !errors.Is(err, storefront.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if got := c.Session.Current(); got != "" {
				t.Fatalf("identity = %q after rejected sign-up", got)
			}
		})
	}
}

func TestSignInBindsSession(t *testing.T) {
	backend := newFakeBackend()
	c := storefront.NewClient(backend, zap.NewNop())
	defer c.Close()

	if err := c.SignIn(context.Background(), "ann@example.com", "password1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if got := c.Session.Current(); got != "u_ann@example.com" {
		t.Fatalf("identity = %q", got)
	}

	c.SignOut()
	if got := c.Session.Current(); got != "" {
		t.Fatalf("identity = %q after sign-out", got)
	}
}

func TestSignInRequiresCredentials(t *testing.T) {
	backend := newFakeBackend()
	c := storefront.NewClient(backend, zap.NewNop())
	defer c.Close()

	err := c.SignIn(context.Background(), "", "")
	if !errors.Is(err, storefront.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestAddClassSnapshotsCoursePrice(t *testing.T) {
	backend := newFakeBackend()
	c := storefront.NewClient(backend, zap.NewNop())
	defer c.Close()

	course := storefront.Course{ID: "c1", Name: "Flow Yoga", Price: 12.5}
	cls := storefront.Class{ID: "k1", CourseID: "c1", Name: "Flow Yoga", Teacher: "May", Date: "2025-01-10"}

	c.AddClass(course, cls)

	// Repricing the course later must not touch the captured line.
	course.Price = 99

	lines := c.Cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	if l.ID != "k1" || l.Teacher != "May" || l.Date != "2025-01-10" {
		t.Fatalf("line = %+v", l)
	}
	if l.Price == nil || *l.Price != 12.5 {
		t.Fatalf("price = %v, want snapshot 12.5", l.Price)
	}
}

func TestProfileAndOrdersRequireIdentity(t *testing.T) {
	backend := newFakeBackend()
	c := storefront.NewClient(backend, zap.NewNop())
	defer c.Close()

	if _, err := c.Profile(context.Background()); !errors.Is(err, storefront.ErrNotSignedIn) {
		t.Fatalf("profile err = %v, want ErrNotSignedIn", err)
	}
	if _, err := c.Orders(context.Background()); !errors.Is(err, storefront.ErrNotSignedIn) {
		t.Fatalf("orders err = %v, want ErrNotSignedIn", err)
	}
}
