package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateSKU = errors.New("product sku already exists")

// Product is a catalog record. Persistence is a plain record store; all
// access control happens before the repository is reached.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SKU         string    `json:"sku" bson:"sku"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
