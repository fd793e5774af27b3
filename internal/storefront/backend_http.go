package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"YogaStore/internal/cart"
)

// ErrUnavailable marks a transport-level failure (timeout, refused
// connection) talking to the backend.
var ErrUnavailable = errors.New("backend unavailable")

// HTTPBackend implements Backend against the YogaStore gateway. It keeps the
// access token issued at sign-in and sends it on every authenticated call;
// the identity arguments on the interface are satisfied by that token, the
// gateway derives the user from it.
type HTTPBackend struct {
	BaseURL string
	Client  *http.Client

	mu    sync.Mutex
	token string
}

func NewHTTPBackend(baseURL string) *HTTPBackend {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &HTTPBackend{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type signInResp struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func (b *HTTPBackend) SignIn(ctx context.Context, email, password string) (string, error) {
	var resp signInResp
	err := b.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, http.StatusOK)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	b.token = resp.AccessToken
	b.mu.Unlock()

	return resp.UserID, nil
}

func (b *HTTPBackend) SignUp(ctx context.Context, reg Registration) (string, error) {
	err := b.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"first_name":       reg.FirstName,
		"last_name":        reg.LastName,
		"email":            reg.Email,
		"phone_number":     reg.PhoneNumber,
		"password":         reg.Password,
		"confirm_password": reg.ConfirmPassword,
	}, nil, http.StatusCreated)
	if err != nil {
		return "", err
	}

	return b.SignIn(ctx, reg.Email, reg.Password)
}

func (b *HTTPBackend) FetchProfile(ctx context.Context, _ string) (Profile, error) {
	var p Profile
	if err := b.do(ctx, http.MethodGet, "/auth/profile", nil, &p, http.StatusOK); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (b *HTTPBackend) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := b.do(ctx, http.MethodGet, "/courses", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *HTTPBackend) ListClasses(ctx context.Context, courseID string) ([]Class, error) {
	var out []Class
	if err := b.do(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID)+"/classes", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

type cartDoc struct {
	CartItems []cart.Line `json:"cart_items"`
}

func (b *HTTPBackend) FetchCart(ctx context.Context, _ string) ([]cart.Line, error) {
	var doc cartDoc
	if err := b.do(ctx, http.MethodGet, "/cart", nil, &doc, http.StatusOK); err != nil {
		return nil, err
	}
	return doc.CartItems, nil
}

func (b *HTTPBackend) SaveCart(ctx context.Context, _ string, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	return b.do(ctx, http.MethodPut, "/cart", cartDoc{CartItems: lines}, nil, http.StatusNoContent)
}

type createOrderReq struct {
	Customer   Customer    `json:"customer"`
	Items      []cart.Line `json:"items"`
	TotalPrice float64     `json:"total_price"`
}

func (b *HTTPBackend) CreateOrder(ctx context.Context, _ string, customer Customer, lines []cart.Line, total float64) (string, error) {
	var created Order
	err := b.do(ctx, http.MethodPost, "/orders", createOrderReq{
		Customer:   customer,
		Items:      lines,
		TotalPrice: total,
	}, &created, http.StatusCreated)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (b *HTTPBackend) ListOrders(ctx context.Context, _ string) ([]Order, error) {
	var out []Order
	if err := b.do(ctx, http.MethodGet, "/orders", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one JSON request and decodes the response into out when the
// status matches want. 404 maps to ErrNotFound; other mismatches surface the
// backend's error message verbatim.
func (b *HTTPBackend) do(ctx context.Context, method, path string, body, out any, want int) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	b.mu.Lock()
	token := b.token
	b.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrUnavailable
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		defer func() { _, _ = io.Copy(io.Discard, resp.Body) }()

		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}

		var er struct {
			Error string `json:"error"`
		}
		if jsonErr := json.NewDecoder(resp.Body).Decode(&er); jsonErr == nil && er.Error != "" {
			return fmt.Errorf("%s (status=%d)", er.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status=%d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
