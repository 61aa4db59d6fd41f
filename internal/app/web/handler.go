// Package web serves the HTML pages of the store.
package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/services/carts"
	"github.com/R3E-Network/petstore/internal/app/services/catalog"
	"github.com/R3E-Network/petstore/internal/app/services/checkout"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
	"github.com/R3E-Network/petstore/internal/pipeline"
	"github.com/R3E-Network/petstore/internal/view"
)

const htmlContentType = "text/html; charset=utf-8"

// Handler renders the store's pages. Unexpected errors are returned to the
// enclosing failsafe.
type Handler struct {
	catalog  *catalog.Service
	carts    *carts.Service
	checkout *checkout.Service
	views    view.Renderer
	log      *logging.Logger
}

// New returns the page handler.
func New(catalogService *catalog.Service, cartService *carts.Service, checkoutService *checkout.Service, views view.Renderer, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewDefault("web")
	}
	return &Handler{
		catalog:  catalogService,
		carts:    cartService,
		checkout: checkoutService,
		views:    views,
		log:      log,
	}
}

// Register installs the page routes on r, including the not-found page.
func (h *Handler) Register(r *mux.Router) {
	r.Handle(view.HomePath(), pipeline.HandlerFunc(h.home)).Methods(http.MethodGet)
	r.Handle(view.ProductsPath(), pipeline.HandlerFunc(h.products)).Methods(http.MethodGet)
	r.Handle("/products/{number}/items", pipeline.HandlerFunc(h.items)).Methods(http.MethodGet)
	r.Handle(view.CartItemsPath(), pipeline.HandlerFunc(h.addToCart)).Methods(http.MethodPost)
	r.Handle(view.CartPath(), pipeline.HandlerFunc(h.cart)).Methods(http.MethodGet)
	r.Handle(view.CartPath(), pipeline.HandlerFunc(h.emptyCart)).Methods(http.MethodDelete)
	r.Handle(view.NewOrderPath(), pipeline.HandlerFunc(h.newOrder)).Methods(http.MethodGet)
	r.Handle(view.OrdersPath(), pipeline.HandlerFunc(h.placeOrder)).Methods(http.MethodPost)
	r.Handle("/orders/{number}", pipeline.HandlerFunc(h.receipt)).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))
	r.NotFoundHandler = pipeline.HandlerFunc(h.notFound)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, http.StatusOK, view.HomeView, nil)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) error {
	keyword := r.URL.Query().Get("keyword")
	matches, err := h.catalog.Search(r.Context(), keyword)
	if err != nil {
		return err
	}
	return h.render(w, http.StatusOK, view.ProductsView, view.ProductsPage{Keyword: keyword, Products: matches})
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) error {
	p, items, err := h.catalog.ItemsOf(r.Context(), mux.Vars(r)["number"])
	if apperrors.IsNotFound(err) {
		return h.notFound(w, r)
	}
	if err != nil {
		return err
	}
	return h.render(w, http.StatusOK, view.ItemsView, view.ItemsPage{Product: p, Items: items})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) error {
	_, err := h.carts.AddItem(r.Context(), logging.GetSessionID(r.Context()), r.PostFormValue("item_number"))
	if apperrors.IsNotFound(err) {
		return h.notFound(w, r)
	}
	if err != nil {
		return err
	}
	http.Redirect(w, r, view.CartPath(), http.StatusSeeOther)
	return nil
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) error {
	c, err := h.carts.Cart(r.Context(), logging.GetSessionID(r.Context()))
	if err != nil {
		return err
	}
	return h.render(w, http.StatusOK, view.CartView, view.CartPage{Cart: c})
}

func (h *Handler) emptyCart(w http.ResponseWriter, r *http.Request) error {
	if err := h.carts.Clear(r.Context(), logging.GetSessionID(r.Context())); err != nil {
		return err
	}
	http.Redirect(w, r, view.HomePath(), http.StatusSeeOther)
	return nil
}

func (h *Handler) newOrder(w http.ResponseWriter, r *http.Request) error {
	c, err := h.carts.Cart(r.Context(), logging.GetSessionID(r.Context()))
	if err != nil {
		return err
	}
	if c.Empty() {
		http.Redirect(w, r, view.CartPath(), http.StatusSeeOther)
		return nil
	}
	return h.render(w, http.StatusOK, view.CheckoutView, view.CheckoutPage{
		Cart: c,
		Form: view.CheckoutForm{CardType: order.CardVisa},
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) error {
	sessionID := logging.GetSessionID(r.Context())
	form := view.CheckoutForm{
		FirstName:    r.PostFormValue("first_name"),
		LastName:     r.PostFormValue("last_name"),
		EmailAddress: r.PostFormValue("email"),
		CardType:     r.PostFormValue("card_type"),
		CardNumber:   r.PostFormValue("card_number"),
		CardExpiry:   r.PostFormValue("card_expiry"),
	}

	placed, err := h.checkout.PlaceOrder(r.Context(), sessionID, checkout.Payment{
		Card: order.CreditCard{Type: form.CardType, Number: form.CardNumber, Expiry: form.CardExpiry},
		Billing: order.Address{
			FirstName:    form.FirstName,
			LastName:     form.LastName,
			EmailAddress: form.EmailAddress,
		},
	})
	var serviceErr *apperrors.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Code == apperrors.CodeInvalidInput {
		c, cartErr := h.carts.Cart(r.Context(), sessionID)
		if cartErr != nil {
			return cartErr
		}
		if c.Empty() {
			http.Redirect(w, r, view.CartPath(), http.StatusSeeOther)
			return nil
		}
		form.CardNumber = ""
		return h.render(w, http.StatusUnprocessableEntity, view.CheckoutView, view.CheckoutPage{
			Cart:  c,
			Form:  form,
			Error: serviceErr.Message,
		})
	}
	if err != nil {
		return err
	}
	http.Redirect(w, r, view.OrderPath(placed.Number), http.StatusSeeOther)
	return nil
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) error {
	placed, err := h.checkout.Order(r.Context(), mux.Vars(r)["number"])
	if apperrors.IsNotFound(err) {
		return h.notFound(w, r)
	}
	if err != nil {
		return err
	}
	return h.render(w, http.StatusOK, view.ReceiptView, view.ReceiptPage{Order: placed})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, http.StatusNotFound, view.NotFoundView, view.NotFoundPage{Path: r.URL.Path})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) error {
	body, err := h.views.Render(name, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	_, err = w.Write([]byte(body))
	return err
}
