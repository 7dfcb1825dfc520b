package models

import "time"

// Product is a catalog entry that can be carted and booked.
type Product struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	ImageID     string    `bson:"imageId" json:"imageId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductInput is the admin create body.
type ProductInput struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" binding:"required,min=2"`
	ImageID     string   `json:"imageId" binding:"required,min=2"`
}

// ProductPatch is the admin partial update body.
type ProductPatch struct {
	Name        *string  `json:"name" binding:"omitempty,min=2"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,min=2"`
	ImageID     *string  `json:"imageId" binding:"omitempty,min=2"`
}
