package gateway_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"YogaStore/internal/auth"
	"YogaStore/internal/cartdoc"
	"YogaStore/internal/catalog"
	"YogaStore/internal/gateway"
	"YogaStore/internal/order"
)

func newAuthTS(t *testing.T, jwtSecret string) *httptest.Server {
	t.Helper()

	s := &auth.Server{
		Log:   zap.NewNop(),
		Store: auth.NewMemStore(),
		JWT:   auth.NewTokenMaker(jwtSecret),
	}

	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "auth",
	})

	return httptest.NewServer(h)
}

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{
		Log:   zap.NewNop(),
		Store: catalog.NewMemStore(),
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})

	return httptest.NewServer(h)
}

func newCartTS(t *testing.T, jwtSecret string) *httptest.Server {
	t.Helper()

	s := &cartdoc.Server{
		Log:   zap.NewNop(),
		Store: cartdoc.NewMemStore(),
	}

	h := cartdoc.NewHandler(s, cartdoc.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "cartdoc",
		JWT:     auth.NewTokenMaker(jwtSecret),
	})

	return httptest.NewServer(h)
}

func newOrderTS(t *testing.T, jwtSecret string) *httptest.Server {
	t.Helper()

	s := &order.Server{
		Log:   zap.NewNop(),
		Store: order.NewMemStore(),
	}

	h := order.NewHandler(s, order.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "order",
		JWT:     auth.NewTokenMaker(jwtSecret),
	})

	return httptest.NewServer(h)
}

func newGatewayTS(t *testing.T, jwtSecret, authURL, catalogURL, cartURL, orderURL string) *httptest.Server {
	t.Helper()

	h, err := gateway.NewHandler(
		gateway.Deps{
			JWTSecret:  jwtSecret,
			AuthURL:    authURL,
			CatalogURL: catalogURL,
			CartURL:    cartURL,
			OrderURL:   orderURL,
		},
		gateway.HTTPDeps{
			Log:     zap.NewNop(),
			Service: "gateway",
			// Registry: nil
		},
	)
	if err != nil {
		t.Fatalf("gateway.NewHandler: %v", err)
	}

	return httptest.NewServer(h)
}

func newStack(t *testing.T, jwtSecret string) *httptest.Server {
	t.Helper()

	authTS := newAuthTS(t, jwtSecret)
	t.Cleanup(authTS.Close)

	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	cartTS := newCartTS(t, jwtSecret)
	t.Cleanup(cartTS.Close)

	orderTS := newOrderTS(t, jwtSecret)
	t.Cleanup(orderTS.Close)

	gwTS := newGatewayTS(t, jwtSecret, authTS.URL, catalogTS.URL, cartTS.URL, orderTS.URL)
	t.Cleanup(gwTS.Close)

	return gwTS
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func registerAndLogin(t *testing.T, c *http.Client, gwURL, email string) string {
	t.Helper()

	resp, raw := doJSON(t, c, http.MethodPost, gwURL+"/auth/register", map[string]any{
		"first_name":       "Ann",
		"last_name":        "Walker",
		"email":            email,
		"phone_number":     "07700900000",
		"password":         "password123",
		"confirm_password": "password123",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodPost, gwURL+"/auth/login", map[string]any{
		"email":    email,
		"password": "password123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d body=%s", resp.StatusCode, string(raw))
	}

	var lr struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	if err := json.Unmarshal(raw, &lr); err != nil {
		t.Fatalf("decode login: %v body=%s", err, string(raw))
	}
	if lr.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	if lr.UserID == "" {
		t.Fatalf("empty user_id")
	}
	return lr.AccessToken
}

func TestGateway_PublicAPI_HappyPath(t *testing.T) {
	const jwtSecret = "test-secret"

	gwTS := newStack(t, jwtSecret)
	c := &http.Client{}

	token := registerAndLogin(t, c, gwTS.URL, "user@example.com")
	authz := map[string]string{"Authorization": "Bearer " + token}

	var courses []catalog.Course
	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/courses", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("courses status=%d body=%s", resp.StatusCode, string(raw))
		}
		if err := json.Unmarshal(raw, &courses); err != nil {
			t.Fatalf("decode courses: %v body=%s", err, string(raw))
		}
		if len(courses) == 0 {
			t.Fatalf("no courses")
		}
	}

	var classes []catalog.Class
	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/courses/"+courses[0].ID+"/classes", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("classes status=%d body=%s", resp.StatusCode, string(raw))
		}
		if err := json.Unmarshal(raw, &classes); err != nil {
			t.Fatalf("decode classes: %v body=%s", err, string(raw))
		}
		if len(classes) == 0 {
			t.Fatalf("no classes for course %s", courses[0].ID)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/cart", nil, authz)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("fresh cart status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	price := courses[0].Price
	cartItems := []map[string]any{
		{
			"id":       classes[0].ID,
			"name":     classes[0].Name,
			"teacher":  classes[0].Teacher,
			"date":     classes[0].Date,
			"price":    price,
			"quantity": 2,
		},
	}

	{
		resp, raw := doJSON(t, c, http.MethodPut, gwTS.URL+"/cart", map[string]any{
			"cart_items": cartItems,
		}, authz)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("put cart status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/cart", nil, authz)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get cart status=%d body=%s", resp.StatusCode, string(raw))
		}

		var doc cartdoc.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("decode cart: %v body=%s", err, string(raw))
		}
		if len(doc.CartItems) != 1 {
			t.Fatalf("cart items=%d want=1", len(doc.CartItems))
		}
		if doc.CartItems[0].Quantity != 2 {
			t.Fatalf("quantity=%d want=2", doc.CartItems[0].Quantity)
		}
	}

	var created order.Order
	{
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/orders", map[string]any{
			"customer": map[string]any{
				"name":         "Ann Walker",
				"phone_number": "07700900000",
				"email":        "user@example.com",
			},
			"items":       cartItems,
			"total_price": price * 2,
		}, authz)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create order status=%d body=%s", resp.StatusCode, string(raw))
		}

		if err := json.Unmarshal(raw, &created); err != nil {
			t.Fatalf("decode order: %v body=%s", err, string(raw))
		}
		if created.ID == "" {
			t.Fatalf("empty order id")
		}
		if created.UserID == "" {
			t.Fatalf("empty user_id")
		}
		if created.TotalPrice != price*2 {
			t.Fatalf("total_price=%v want=%v", created.TotalPrice, price*2)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/orders", nil, authz)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list orders status=%d body=%s", resp.StatusCode, string(raw))
		}

		var got []order.Order
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("decode orders: %v body=%s", err, string(raw))
		}
		if len(got) != 1 {
			t.Fatalf("orders=%d want=1", len(got))
		}
		if got[0].ID != created.ID {
			t.Fatalf("id=%s want=%s", got[0].ID, created.ID)
		}
	}
}

func TestGateway_PublicAPI_CartRequiresAuth(t *testing.T) {
	const jwtSecret = "test-secret"

	gwTS := newStack(t, jwtSecret)
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/cart", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestGateway_PublicAPI_OrdersRequiresAuth(t *testing.T) {
	const jwtSecret = "test-secret"

	gwTS := newStack(t, jwtSecret)
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/orders", map[string]any{
		"items": []map[string]any{{"id": "k1", "quantity": 1}},
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestGateway_PublicAPI_CartIsolatedPerUser(t *testing.T) {
	const jwtSecret = "test-secret"

	gwTS := newStack(t, jwtSecret)
	c := &http.Client{}

	tokenA := registerAndLogin(t, c, gwTS.URL, "a@example.com")
	tokenB := registerAndLogin(t, c, gwTS.URL, "b@example.com")

	resp, raw := doJSON(t, c, http.MethodPut, gwTS.URL+"/cart", map[string]any{
		"cart_items": []map[string]any{
			{"id": "k1", "name": "Flow", "quantity": 1},
		},
	}, map[string]string{"Authorization": "Bearer " + tokenA})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("put cart status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodGet, gwTS.URL+"/cart", nil, map[string]string{
		"Authorization": "Bearer " + tokenB,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("other user's cart status=%d body=%s", resp.StatusCode, string(raw))
	}
}
