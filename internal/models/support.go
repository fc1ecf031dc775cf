package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportMessage est un message du formulaire de contact
type SupportMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Handled   bool               `bson:"handled" json:"handled"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Statuts d'une demande de retour
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// ReturnRequest est une demande de retour produit (fenêtre de 7 jours
// après livraison)
type ReturnRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   string             `bson:"order_id" json:"orderId"`
	UserID    string             `bson:"user_id" json:"userId"`
	Reason    string             `bson:"reason" json:"reason"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
