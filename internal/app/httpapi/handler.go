// Package httpapi exposes the JSON admin API used to stock the catalog and
// look up orders.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	app "github.com/R3E-Network/petstore/internal/app"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/middleware"
)

// Prefix is where the admin API is mounted.
const Prefix = "/api"

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the admin API under Prefix.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}
	root := mux.NewRouter()
	root.Use(middleware.CaptureRoute)
	r := root.PathPrefix(Prefix).Subrouter()
	r.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{number}/items", h.createItem).Methods(http.MethodPost)
	r.HandleFunc("/products/{number}/items", h.listItems).Methods(http.MethodGet)
	r.HandleFunc("/orders/{number}", h.getOrder).Methods(http.MethodGet)
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperrors.NotFound("route", r.URL.Path))
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})
	return root
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Number        string `json:"number"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		PhotoFileName string `json:"photo_file_name"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Catalog.AddProduct(r.Context(), product.Product{
		Number:        payload.Number,
		Name:          payload.Name,
		Description:   payload.Description,
		PhotoFileName: payload.PhotoFileName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []product.Product
		err      error
	)
	if keyword := r.URL.Query().Get("keyword"); keyword != "" {
		products, err = h.app.Catalog.Search(r.Context(), keyword)
	} else {
		products, err = h.app.Catalog.Products(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) createItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Number      string          `json:"number"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Catalog.AddItem(r.Context(), product.Item{
		Number:        payload.Number,
		ProductNumber: mux.Vars(r)["number"],
		Description:   payload.Description,
		Price:         payload.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) {
	_, items, err := h.app.Catalog.ItemsOf(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	placed, err := h.app.Checkout.Order(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, placed)
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.InvalidInput("body", fmt.Sprintf("malformed JSON: %v", err))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if serviceErr := apperrors.GetServiceError(err); serviceErr != nil {
		message = serviceErr.Message
	}
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}
