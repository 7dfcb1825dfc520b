package models

import "time"

// Service is a storefront offering shown on the public site.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	ImageID     string    `bson:"imageId" json:"imageId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ServiceInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageID     string `json:"imageId" binding:"required"`
}

type News struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Link        string    `bson:"link,omitempty" json:"link,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type NewsInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Link        string    `json:"link" binding:"omitempty,url"`
}

// Message is a contact form submission.
type Message struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type MessageInput struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10"`
}

// Setting is the site-wide singleton.
type Setting struct {
	Name      string    `bson:"name" json:"name"`
	Logo      string    `bson:"logo,omitempty" json:"logo,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SettingInput struct {
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}
