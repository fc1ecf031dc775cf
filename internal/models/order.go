package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de commande
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Brand     string  `bson:"brand" json:"brand"`
	Price     float64 `bson:"price" json:"price"` // prix serveur au moment de la commande
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `bson:"full_name" json:"fullName"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Phone      string `bson:"phone" json:"phone"`
}

// PaymentDetails ne contient jamais de numéro de carte complet :
// seuls les 4 derniers chiffres sont acceptés et stockés.
type PaymentDetails struct {
	CardHolder string `bson:"card_holder,omitempty" json:"cardHolder,omitempty"`
	CardLast4  string `bson:"card_last4,omitempty" json:"cardLast4,omitempty"`
	UPIID      string `bson:"upi_id,omitempty" json:"upiId,omitempty"`
}

// GiftItem est la ligne cadeau ajoutée par le serveur quand le sous-total
// franchit le seuil promotionnel. Jamais persistée dans le panier.
type GiftItem struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"` // toujours 0
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	FreeGift        *GiftItem          `bson:"free_gift,omitempty" json:"freeGift,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	ShippingFee     float64            `bson:"shipping_fee" json:"shippingFee"`
	Total           float64            `bson:"total" json:"total"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	PaymentDetails  PaymentDetails     `bson:"payment_details" json:"paymentDetails"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time         `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}
