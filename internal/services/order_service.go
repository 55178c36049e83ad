package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode"

	"scoop_storefront/internal/models"
	"scoop_storefront/internal/pricing"
	"scoop_storefront/internal/store"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("panier vide")

// PaymentInput est accepté tel quel : aucun paiement n'est traité
type PaymentInput struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type PlaceOrderInput struct {
	Shipping models.ShippingDetails `json:"shipping"`
	Payment  PaymentInput           `json:"payment"`
}

// Customer identifie l'acheteur à partir de la session
type Customer struct {
	ID    string
	Name  string
	Email string
}

// Discount actif dans la session au moment de la commande
type Discount struct {
	Code    string
	Percent float64
}

type OrderNotifier interface {
	OrderPlaced(order models.Order, to string)
}

type OrderService struct {
	carts    store.Carts
	orders   store.Orders
	notifier OrderNotifier
	now      func() time.Time
}

func NewOrderService(carts store.Carts, orders store.Orders, notifier OrderNotifier) *OrderService {
	return &OrderService{carts: carts, orders: orders, notifier: notifier, now: time.Now}
}

// Place recalcule les prix depuis le panier courant, enregistre la commande
// puis vide le panier.
func (s *OrderService) Place(ctx context.Context, customer Customer, discount Discount, in PlaceOrderInput) (*models.Order, error) {
	items, err := s.carts.Items(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := pricing.Calculate(items, discount.Percent)

	order := &models.Order{
		OrderNumber: uuid.NewString(),
		UserID:      customer.ID,
		Shipping: models.ShippingDetails{
			Name:    strings.TrimSpace(in.Shipping.Name),
			Address: strings.TrimSpace(in.Shipping.Address),
			City:    strings.TrimSpace(in.Shipping.City),
		},
		Payment: models.PaymentSummary{
			Method:          "card",
			CardLast4:       cardLast4(in.Payment.CardNumber),
			Subtotal:        summary.Subtotal,
			DiscountPercent: summary.DiscountPercent,
			DiscountAmount:  summary.DiscountAmount,
			Tax:             summary.Tax,
			Total:           summary.Total,
		},
		Items:     make([]models.OrderItem, 0, len(items)),
		CreatedAt: s.now(),
	}
	if discount.Percent > 0 {
		order.Payment.DiscountCode = discount.Code
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("🧾 Commande %s enregistrée pour %s (%.2f)", order.OrderNumber, customer.ID, order.Payment.Total)

	// La commande existe déjà : un échec ici ne doit pas faire échouer la requête
	if err := s.carts.Clear(ctx, customer.ID); err != nil {
		log.Printf("⚠️ Panier non vidé après commande %s: %v", order.OrderNumber, err)
	}

	if s.notifier != nil && customer.Email != "" {
		go s.notifier.OrderPlaced(*order, customer.Email)
	}

	return order, nil
}

func (s *OrderService) Find(ctx context.Context, userID, orderNumber string) (*models.Order, error) {
	return s.orders.FindByNumber(ctx, userID, orderNumber)
}

func (s *OrderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func cardLast4(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}
