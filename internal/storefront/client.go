package storefront

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"YogaStore/internal/cart"
)

// Client is one shopper's application session: an identity session, the
// in-memory cart, and the sync adapter binding them to the backend. Browsing
// helpers delegate straight to the backend; cart mutations go through Cart
// and are persisted by Sync.
type Client struct {
	Backend Backend
	Session *Session
	Cart    *cart.Store
	Sync    *Syncer
	Log     *zap.Logger
}

func NewClient(backend Backend, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	session := NewSession()
	store := cart.NewStore()

	return &Client{
		Backend: backend,
		Session: session,
		Cart:    store,
		Sync:    NewSyncer(backend, store, session, log),
		Log:     log,
	}
}

// SignIn authenticates and binds the session to the returned identity.
// Backend rejections are returned verbatim.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password required", ErrValidation)
	}

	identity, err := c.Backend.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	c.Session.Set(identity)
	return nil
}

// SignUp validates the registration form, creates the account and signs the
// new identity in. All validation happens before any network call.
func (c *Client) SignUp(ctx context.Context, reg Registration) error {
	if err := validateRegistration(reg); err != nil {
		return err
	}

	identity, err := c.Backend.SignUp(ctx, reg)
	if err != nil {
		return err
	}

	c.Session.Set(identity)
	return nil
}

// SignOut drops the identity; the sync adapter clears the cart in response.
func (c *Client) SignOut() {
	c.Session.Set("")
}

func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	return c.Backend.ListCourses(ctx)
}

func (c *Client) Classes(ctx context.Context, courseID string) ([]Class, error) {
	return c.Backend.ListClasses(ctx, courseID)
}

// AddClass puts one class instance in the cart, copying the course price and
// display fields at add time. The copy is intentional: later catalog edits
// do not reprice lines already in the cart.
func (c *Client) AddClass(course Course, cls Class) {
	price := course.Price
	c.Cart.Add(cart.Item{
		ID:      cls.ID,
		Name:    cls.Name,
		Teacher: cls.Teacher,
		Date:    cls.Date,
		Price:   &price,
	})
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	identity := c.Session.Current()
	if identity == "" {
		return Profile{}, ErrNotSignedIn
	}
	return c.Backend.FetchProfile(ctx, identity)
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	identity := c.Session.Current()
	if identity == "" {
		return nil, ErrNotSignedIn
	}
	return c.Backend.ListOrders(ctx, identity)
}

// PlaceOrder runs checkout for the current cart. See Syncer.PlaceOrder for
// the sequencing guarantees.
func (c *Client) PlaceOrder(ctx context.Context, customer Customer) (string, error) {
	return c.Sync.PlaceOrder(ctx, customer)
}

// Close stops the sync adapter after draining pending saves.
func (c *Client) Close() {
	c.Sync.Close()
}

func validateRegistration(reg Registration) error {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", reg.FirstName},
		{"last_name", reg.LastName},
		{"email", reg.Email},
		{"phone_number", reg.PhoneNumber},
		{"password", reg.Password},
		{"confirm_password", reg.ConfirmPassword},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s required", ErrValidation, f.name)
		}
	}

	if reg.Password != reg.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	return nil
}
