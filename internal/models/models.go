package models

import (
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Store hashed password
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Breed             string            `json:"breed"`
	Gender            string            `json:"gender"`
	Age               string            `json:"age"`
	Price             float64           `json:"price"`
	Description       string            `json:"description"`
	ImageURLs         []string          `json:"image_urls"`         // ordered upload paths, relative to static/
	AdditionalDetails map[string]string `json:"additional_details"` // dynamic key/value details
	Rating            float64           `json:"rating"`
	IsAvailable       bool              `json:"is_available"`
	CreatedAt         time.Time         `json:"created_at"`
}

type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"` // Public "VELY..." ID
	UserID          *int64      `json:"user_id"`      // nil for guest orders
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	PaymentMethod   string      `json:"payment_method"` // bank, paypal, crypto
	PaymentStatus   string      `json:"payment_status"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price snapshot at order time
}

// SiteSettings is a singleton record; read paths use "first or none".
type SiteSettings struct {
	ID            int64             `json:"id"`
	Location      string            `json:"location"`
	Phone         string            `json:"phone"`
	WhatsApp      string            `json:"whatsapp"`
	ContactEmail  string            `json:"contact_email"`
	BusinessHours string            `json:"business_hours"`
	SocialLinks   map[string]string `json:"social_links"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Order fulfillment statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var orderStatuses = map[string]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderCompleted:  true,
	OrderCancelled:  true,
}

var paymentStatuses = map[string]bool{
	PaymentPending:  true,
	PaymentPaid:     true,
	PaymentRefunded: true,
}

func ValidOrderStatus(s string) bool   { return orderStatuses[s] }
func ValidPaymentStatus(s string) bool { return paymentStatuses[s] }
