package customer

import "time"

// Customer is a registered shopper.
type Customer struct {
	ID           int64     `json:"customer_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"customer_email"`
	Phone        string    `json:"customer_phone"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest holds data for creating a customer account.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"customer_email"`
	Phone    string `json:"customer_phone"`
	Username string `json:"username"`
	Password string `json:"password"`
}
