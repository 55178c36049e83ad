package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShippingDetails struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
}

// PaymentSummary ne contient jamais le numéro de carte complet ni le CVC
type PaymentSummary struct {
	Method          string  `bson:"method" json:"method"`
	CardLast4       string  `bson:"card_last4,omitempty" json:"cardLast4,omitempty"`
	Subtotal        float64 `bson:"subtotal" json:"subtotal"`
	DiscountCode    string  `bson:"discount_code,omitempty" json:"discountCode,omitempty"`
	DiscountPercent float64 `bson:"discount_percent" json:"discountPercent"`
	DiscountAmount  float64 `bson:"discount_amount" json:"discountAmount"`
	Tax             float64 `bson:"tax" json:"tax"`
	Total           float64 `bson:"total" json:"total"`
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	UserID      string             `bson:"user_id" json:"userId"`
	Shipping    ShippingDetails    `bson:"shipping" json:"shipping"`
	Payment     PaymentSummary     `bson:"payment" json:"payment"`
	Items       []OrderItem        `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// ItemCount retourne le nombre total d'articles de la commande
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
