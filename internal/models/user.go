package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PaymentInfo is stored as given and never charged.
type PaymentInfo struct {
	CardName   string `bson:"cardName"   json:"cardName"`
	CardNumber string `bson:"cardNumber" json:"cardNumber"`
	ExpiryDate string `bson:"expiryDate" json:"expiryDate"`
	CVV        string `bson:"cvv"        json:"cvv"`
}

type Address struct {
	ID        string    `bson:"_id"       json:"id"`
	City      string    `bson:"city"      json:"city"`
	State     string    `bson:"state"     json:"state"`
	Zipcode   string    `bson:"zipcode"   json:"zipcode"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID           string       `gorm:"primaryKey;type:varchar(36)"  bson:"_id"                  json:"id"`
	Name         string       `gorm:"not null"                     bson:"name"                 json:"name"`
	Gmail        string       `gorm:"uniqueIndex;not null"         bson:"gmail"                json:"gmail"`
	Password     string       `gorm:"not null"                     bson:"password"             json:"-"`
	Role         string       `gorm:"not null;default:user"        bson:"role"                 json:"role"`
	ProfileImage *string      `                                    bson:"profileImage"         json:"profileImage"`
	CreditCard   *PaymentInfo `gorm:"serializer:json;type:text"    bson:"creditCard,omitempty" json:"creditCard,omitempty"`
	Wishlist     []string     `gorm:"serializer:json;type:text"    bson:"wishlist"             json:"wishlist"`
	Addresses    []Address    `gorm:"serializer:json;type:text"    bson:"addresses"            json:"addresses"`
	Orders       []string     `gorm:"serializer:json;type:text"    bson:"orders"               json:"orders"`
	CreatedAt    time.Time    `                                    bson:"createdAt"            json:"createdAt"`
	UpdatedAt    time.Time    `                                    bson:"updatedAt"            json:"updatedAt"`
}

// Normalize replaces nil lists so they serialize as [].
func (u *User) Normalize() {
	if u.Wishlist == nil {
		u.Wishlist = []string{}
	}
	if u.Addresses == nil {
		u.Addresses = []Address{}
	}
	if u.Orders == nil {
		u.Orders = []string{}
	}
}

func (u *User) AfterFind(*gorm.DB) error {
	u.Normalize()
	return nil
}

// Profile is a user with its order references expanded.
type Profile struct {
	User
	Orders []Order `json:"orders"`
}
