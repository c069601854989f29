package handlers

import "github.com/teran1416/InventarioApp/internal/models"

type CreateProductRequest struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	Quantity          int     `json:"quantity" validate:"gte=0,lte=2147483647"`
	Price             float64 `json:"price" validate:"gte=0"`
	MinStockThreshold *int    `json:"minStockThreshold,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
}

// UpdateProductRequest uses pointers so an absent field can be told apart from a zero one.
type UpdateProductRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Quantity          *int     `json:"quantity,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	MinStockThreshold *int     `json:"minStockThreshold,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
}

type StockRequest struct {
	Quantity   *int `json:"quantity" validate:"required,gte=0,lte=2147483647"`
	IsAddition bool `json:"isAddition"`
}

type StockResponse struct {
	Product    models.Product `json:"product"`
	IsLowStock bool           `json:"isLowStock"`
	Message    string         `json:"message"`
}

type SummaryResponse struct {
	TotalProducts       int     `json:"totalProducts"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
	LowStockCount       int     `json:"lowStockCount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                   `json:"message"`
	Error   string                   `json:"error,omitempty"`
	Errors  []ProductValidationError `json:"errors,omitempty"`
}

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse is returned by register and login (with a token) and by profile (without).
type IdentityResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

func identityFrom(u models.User, token string) IdentityResponse {
	return IdentityResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Token: token}
}
