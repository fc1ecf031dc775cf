package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"userId" bson:"userId"`
	FullName   string             `json:"fullName" bson:"fullName"`
	Street     string             `json:"street" bson:"street"`
	City       string             `json:"city" bson:"city"`
	State      string             `json:"state" bson:"state"`
	PostalCode string             `json:"postalCode" bson:"postalCode"`
	Phone      string             `json:"phone" bson:"phone"`
	IsDefault  bool               `json:"isDefault" bson:"isDefault"`
}
