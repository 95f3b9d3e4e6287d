// Package checkout turns the current cart into an order confirmation.
// Nothing is charged and the order is not stored; placing an order only
// validates the form, prices the cart and clears it.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/nikolayk812/vibe-vault/internal/port"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidForm = errors.New("checkout form is invalid")
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
)

const DefaultCountry = "India"

type Form struct {
	Email      string
	FirstName  string
	LastName   string
	Address    string
	City       string
	PostalCode string
	Country    string

	PaymentMethod PaymentMethod
	CardNumber    string
	ExpiryDate    string // MM/YY
	CVC           string
}

type Confirmation struct {
	OrderID  uuid.UUID
	Items    []domain.CartItem
	Totals   domain.Totals
	PlacedAt time.Time
}

type Service struct {
	cart   port.CartStore
	rules  domain.PricingRules
	logger *zap.Logger
	now    func() time.Time
}

func NewService(cart port.CartStore, rules domain.PricingRules, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		cart:   cart,
		rules:  rules,
		logger: logger.With(zap.String("component", "checkout")),
		now:    time.Now,
	}
}

// Summary prices the current cart.
func (s *Service) Summary(ctx context.Context) (domain.Cart, domain.Totals) {
	cart := s.cart.Load(ctx)
	return cart, s.rules.Totals(cart)
}

func (s *Service) PlaceOrder(ctx context.Context, form Form) (Confirmation, error) {
	form = form.normalized()

	if err := form.Validate(); err != nil {
		return Confirmation{}, err
	}

	cart, totals := s.Summary(ctx)
	if cart.IsEmpty() {
		return Confirmation{}, ErrEmptyCart
	}

	orderID, err := uuid.NewRandom()
	if err != nil {
		return Confirmation{}, fmt.Errorf("uuid.NewRandom: %w", err)
	}

	s.cart.Clear(ctx)

	if !s.cart.Load(ctx).IsEmpty() {
		s.logger.Warn("cart still holds items after order",
			zap.String("order_id", orderID.String()))
	}

	s.logger.Info("order placed",
		zap.String("order_id", orderID.String()),
		zap.Int("item_count", cart.ItemCount()),
		zap.String("total", totals.Total.Round().String()),
		zap.String("payment_method", string(form.PaymentMethod)),
	)

	return Confirmation{
		OrderID:  orderID,
		Items:    cart.Items,
		Totals:   totals,
		PlacedAt: s.now().UTC(),
	}, nil
}

// Validate reports every problem at once, joined under ErrInvalidForm.
func (f Form) Validate() error {
	var errs []error

	required := []struct {
		field, value string
	}{
		{"email", f.Email},
		{"first name", f.FirstName},
		{"last name", f.LastName},
		{"address", f.Address},
		{"city", f.City},
		{"postal code", f.PostalCode},
		{"country", f.Country},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is empty", r.field))
		}
	}

	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil {
			errs = append(errs, fmt.Errorf("email[%s] is not valid", f.Email))
		}
	}

	switch f.PaymentMethod {
	case PaymentPayPal:
	case PaymentCard:
		errs = append(errs, f.validateCard()...)
	default:
		errs = append(errs, fmt.Errorf("payment method[%s] is not supported", f.PaymentMethod))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidForm, errors.Join(errs...))
}

func (f Form) validateCard() []error {
	var errs []error

	digits := strings.ReplaceAll(f.CardNumber, " ", "")
	if len(digits) < 12 || len(digits) > 19 || !allDigits(digits) {
		errs = append(errs, fmt.Errorf("card number is not valid"))
	}

	if _, err := time.Parse("01/06", f.ExpiryDate); err != nil {
		errs = append(errs, fmt.Errorf("expiry date[%s] is not MM/YY", f.ExpiryDate))
	}

	if len(f.CVC) < 3 || len(f.CVC) > 4 || !allDigits(f.CVC) {
		errs = append(errs, fmt.Errorf("cvc is not valid"))
	}

	return errs
}

func (f Form) normalized() Form {
	trim := strings.TrimSpace
	f.Email = trim(f.Email)
	f.FirstName = trim(f.FirstName)
	f.LastName = trim(f.LastName)
	f.Address = trim(f.Address)
	f.City = trim(f.City)
	f.PostalCode = trim(f.PostalCode)
	f.Country = trim(f.Country)
	f.CardNumber = trim(f.CardNumber)
	f.ExpiryDate = trim(f.ExpiryDate)
	f.CVC = trim(f.CVC)

	if f.Country == "" {
		f.Country = DefaultCountry
	}
	if f.PaymentMethod == "" {
		f.PaymentMethod = PaymentCard
	}

	return f
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
