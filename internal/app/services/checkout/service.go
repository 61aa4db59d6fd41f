package checkout

import (
	"context"
	"regexp"
	"strings"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/metrics"
	"github.com/R3E-Network/petstore/internal/app/services/carts"
	"github.com/R3E-Network/petstore/internal/app/storage"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{12,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// Payment is what the shopper submits at checkout.
type Payment struct {
	Card    order.CreditCard
	Billing order.Address
}

// Service turns session carts into orders.
type Service struct {
	carts  *carts.Service
	orders storage.OrderStore
	log    *logging.Logger
}

// New constructs a checkout service.
func New(cartService *carts.Service, orders storage.OrderStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("checkout")
	}
	return &Service{
		carts:  cartService,
		orders: orders,
		log:    log,
	}
}

// PlaceOrder validates the payment, records an order for the session's cart
// and empties the cart.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, payment Payment) (order.Order, error) {
	card, err := validateCard(payment.Card)
	if err != nil {
		return order.Order{}, err
	}
	billing, err := validateBilling(payment.Billing)
	if err != nil {
		return order.Order{}, err
	}

	var placed order.Order
	err = s.carts.Checkout(ctx, sessionID, func(c cart.Cart) error {
		if c.Empty() {
			return apperrors.InvalidInput("cart", "is empty")
		}
		created, err := s.orders.CreateOrder(ctx, order.Order{
			Lines:   linesOf(c),
			Total:   c.Total(),
			Payment: card,
			Billing: billing,
		})
		if err != nil {
			return err
		}
		placed = created
		return nil
	})
	if err != nil {
		return order.Order{}, err
	}

	metrics.RecordOrderPlaced(card.Type)
	s.log.WithContext(ctx).
		WithField("order_number", placed.Number).
		WithField("total", placed.Total.StringFixed(2)).
		Info("order placed")
	return placed, nil
}

// Order returns a placed order.
func (s *Service) Order(ctx context.Context, number string) (order.Order, error) {
	return s.orders.GetOrder(ctx, strings.TrimSpace(number))
}

func linesOf(c cart.Cart) []order.Line {
	lines := make([]order.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, order.Line{
			ItemNumber:  l.Item.Number,
			Description: l.Item.Description,
			UnitPrice:   l.Item.Price,
			Quantity:    l.Quantity,
		})
	}
	return lines
}

func validateCard(card order.CreditCard) (order.CreditCard, error) {
	card.Type = strings.ToLower(strings.TrimSpace(card.Type))
	switch card.Type {
	case order.CardVisa, order.CardMasterCard, order.CardAmex:
	default:
		return order.CreditCard{}, apperrors.InvalidInput("card_type", "unsupported card type")
	}

	number := strings.NewReplacer(" ", "", "-", "").Replace(card.Number)
	if !cardNumberPattern.MatchString(number) {
		return order.CreditCard{}, apperrors.InvalidInput("card_number", "must be 12 to 19 digits")
	}
	card.Number = MaskCardNumber(number)

	card.Expiry = strings.TrimSpace(card.Expiry)
	if !expiryPattern.MatchString(card.Expiry) {
		return order.CreditCard{}, apperrors.InvalidInput("card_expiry", "must be MM/YY")
	}
	return card, nil
}

func validateBilling(addr order.Address) (order.Address, error) {
	addr.FirstName = strings.TrimSpace(addr.FirstName)
	addr.LastName = strings.TrimSpace(addr.LastName)
	addr.EmailAddress = strings.TrimSpace(addr.EmailAddress)
	if addr.FirstName == "" && addr.LastName == "" {
		return order.Address{}, apperrors.InvalidInput("billing", "a name is required")
	}
	if addr.EmailAddress != "" && !strings.Contains(addr.EmailAddress, "@") {
		return order.Address{}, apperrors.InvalidInput("email_address", "is not an email address")
	}
	return addr, nil
}

// MaskCardNumber keeps only the last four digits.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
