// Package cartdouble is an in-memory stand-in for the cart API. It answers the same routes
// with the same document shapes, and rejects the invalid payloads that a strict
// implementation would reject, so that every scenario has a well-defined expected outcome.
//
// Updates are validated and answered but not stored, like the public API it stands in for;
// created carts and product deletions are stored.
package cartdouble

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deliveryqa/cart-contract-tests/servicedef"
)

// MaxBodyBytes is the largest request body accepted; larger ones get 413.
const MaxBodyBytes = 64 * 1024

type Handler struct {
	store *Store
	now   func() time.Time
}

// NewHandler creates a handler serving the carts in s.
func NewHandler(s *Store) *Handler {
	return &Handler{store: s, now: time.Now}
}

// NewRouter returns a router serving a fresh store.
func NewRouter() http.Handler {
	return NewHandler(NewStore()).Router()
}

// Router returns a router with the cart routes mounted under /carts.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(echoRequestID)
	h.Routes(r)
	return r
}

// echoRequestID copies the caller's X-Request-Id onto the response, so a client sending
// concurrent requests can tell which request each response answers.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(middleware.RequestIDHeader); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// Routes mounts the cart API. The Authorization header is ignored, as it is by the public API.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.CreateCart)
		r.Post("/add", h.CreateCart)
		r.Get("/{id}", h.GetCart)
		r.Put("/{id}", h.UpdateCart)
		r.Patch("/{id}", h.UpdateCart)
		r.Delete("/{id}", h.DeleteCart)
		r.Delete("/{id}/products/{productId}", h.DeleteCartProduct)
	})
}

type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, apiError{Message: fmt.Sprintf(format, args...)})
}

func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s '%s'", name, raw)
	}
	return id, nil
}

// GetCart handles GET /carts/{id}
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "%s", err)
		return
	}
	c, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Cart with id '%d' not found", id)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCart handles POST /carts and POST /carts/add
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	payload, status, err := readPayload(w, r)
	if err != nil {
		writeError(w, status, "%s", err)
		return
	}
	if !payload.UserID.IsDefined() || payload.UserID.IntValue() <= 0 {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}
	c := h.store.Create(servicedef.Cart{
		UserID:   payload.UserID.IntValue(),
		Products: linesFromPayload(nil, payload),
	})
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCart handles PUT and PATCH /carts/{id}. The updated cart is returned but not stored.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "%s", err)
		return
	}
	payload, status, err := readPayload(w, r)
	if err != nil {
		writeError(w, status, "%s", err)
		return
	}
	c, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Cart with id '%d' not found", id)
		return
	}
	var existing []servicedef.CartProduct
	if payload.Merge {
		existing = c.Products
	}
	c.Products = linesFromPayload(existing, payload)
	writeJSON(w, http.StatusOK, withTotals(c))
}

// DeleteCart handles DELETE /carts/{id}
func (h *Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "%s", err)
		return
	}
	c, ok := h.store.Delete(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Cart with id '%d' not found", id)
		return
	}
	writeJSON(w, http.StatusOK, servicedef.DeletedCart{
		Cart:      c,
		IsDeleted: true,
		DeletedOn: h.now().UTC().Format(time.RFC3339),
	})
}

// DeleteCartProduct handles DELETE /carts/{id}/products/{productId}
func (h *Handler) DeleteCartProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "%s", err)
		return
	}
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "%s", err)
		return
	}
	c, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Cart with id '%d' not found", id)
		return
	}
	kept := make([]servicedef.CartProduct, 0, len(c.Products))
	for _, p := range c.Products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(c.Products) {
		writeError(w, http.StatusNotFound, "Product with id '%d' not found in cart '%d'", productID, id)
		return
	}
	c.Products = kept
	c = withTotals(c)
	h.store.Put(c)
	writeJSON(w, http.StatusOK, c)
}

// readPayload decodes and validates a create or update body. The returned status is the one
// to answer with if err is non-nil.
func readPayload(w http.ResponseWriter, r *http.Request) (servicedef.CartPayload, int, error) {
	var payload servicedef.CartPayload
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return payload, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
		}
		return payload, http.StatusBadRequest, err
	}
	if len(data) == 0 {
		return payload, http.StatusBadRequest, errors.New("request body is required")
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
	}
	if len(payload.Products) == 0 {
		return payload, http.StatusBadRequest, errors.New("products must be a non-empty array")
	}
	for i, line := range payload.Products {
		if line.ID <= 0 {
			return payload, http.StatusBadRequest, fmt.Errorf("products[%d]: invalid product id %d", i, line.ID)
		}
		if line.Quantity < 0 {
			return payload, http.StatusBadRequest, fmt.Errorf("products[%d]: quantity must not be negative", i)
		}
		if d := line.DiscountPercentage; d != nil && (*d < 0 || *d > 100) {
			return payload, http.StatusBadRequest, fmt.Errorf("products[%d]: discountPercentage out of range", i)
		}
	}
	return payload, 0, nil
}

// linesFromPayload merges the payload's lines into existing ones. Lines naming the same
// product are combined by adding their quantities.
func linesFromPayload(existing []servicedef.CartProduct, payload servicedef.CartPayload) []servicedef.CartProduct {
	var order []int
	quantities := make(map[int]int)
	discounts := make(map[int]*float64)
	for _, p := range existing {
		order = append(order, p.ID)
		quantities[p.ID] = p.Quantity
		d := p.DiscountPercentage
		discounts[p.ID] = &d
	}
	for _, line := range payload.Products {
		if _, seen := quantities[line.ID]; !seen {
			order = append(order, line.ID)
		}
		quantities[line.ID] += line.Quantity
		if line.DiscountPercentage != nil {
			discounts[line.ID] = line.DiscountPercentage
		}
	}
	ret := make([]servicedef.CartProduct, 0, len(order))
	for _, id := range order {
		ret = append(ret, productLine(id, quantities[id], discounts[id]))
	}
	return ret
}
