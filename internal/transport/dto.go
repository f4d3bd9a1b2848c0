package transport

import (
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

// The web client sends gmail; email is accepted as an alias.
type RegisterRequest struct {
	Name     string `json:"name"`
	Gmail    string `json:"gmail"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Address() string { return pick(r.Gmail, r.Email) }

type LoginRequest struct {
	Gmail    string `json:"gmail"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Address() string { return pick(r.Gmail, r.Email) }

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Gmail string `json:"gmail"`
	Role  string `json:"role"`
}

func Summarize(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Gmail: u.Gmail, Role: u.Role}
}

// ProductRequest serves create and patch; absent fields stay nil.
type ProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
}

func (r ProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Rating:      r.Rating,
		Description: r.Description,
		Images:      r.Images,
		Category:    r.Category,
		Stock:       r.Stock,
	}
}

type ReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment"`
}

type LocationRequest struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

type OrderItemRequest struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type CreateOrderRequest struct {
	Location    LocationRequest    `json:"order_sendlocation"`
	Items       []OrderItemRequest `json:"item_associated"`
	TotalAmount *float64           `json:"totalAmount"`
}

func (r CreateOrderRequest) Input() service.CreateOrderInput {
	items := make([]models.OrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
	}
	return service.CreateOrderInput{
		Location:    models.Location{City: r.Location.City, State: r.Location.State, Zipcode: r.Location.Zipcode},
		Items:       items,
		TotalAmount: r.TotalAmount,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type PaymentInfoRequest struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

type UpdateProfileRequest struct {
	Name         *string             `json:"name"`
	Gmail        *string             `json:"gmail"`
	ProfileImage *string             `json:"profileImage"`
	CreditCard   *PaymentInfoRequest `json:"creditCard"`
}

func (r UpdateProfileRequest) Input() service.ProfileInput {
	in := service.ProfileInput{Name: r.Name, Gmail: r.Gmail, ProfileImage: r.ProfileImage}
	if r.CreditCard != nil {
		in.CreditCard = &models.PaymentInfo{
			CardName:   r.CreditCard.CardName,
			CardNumber: r.CreditCard.CardNumber,
			ExpiryDate: r.CreditCard.ExpiryDate,
			CVV:        r.CreditCard.CVV,
		}
	}
	return in
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AddressRequest struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

func (r AddressRequest) Input() service.AddressInput {
	return service.AddressInput{City: r.City, State: r.State, Zipcode: r.Zipcode}
}
