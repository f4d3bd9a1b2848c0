package models

import (
	"slices"
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses has no transition graph; any value may follow any other.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsOrderStatus(s string) bool {
	return slices.Contains(OrderStatuses, s)
}

type Location struct {
	City    string `bson:"city"    json:"city"`
	State   string `bson:"state"   json:"state"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
}

// OrderItem is a snapshot taken at order time.
type OrderItem struct {
	ProductID   string  `bson:"productId"   json:"productId"`
	ProductName string  `bson:"productName" json:"productName"`
	Quantity    int     `bson:"quantity"    json:"quantity"`
	Price       float64 `bson:"price"       json:"price"`
}

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)"         bson:"_id"                json:"id"`
	OrderDate   time.Time   `gorm:"index;not null"                      bson:"order_date"         json:"order_date"`
	Location    Location    `gorm:"embedded;embeddedPrefix:ship_"       bson:"order_sendlocation" json:"order_sendlocation"`
	Items       []OrderItem `gorm:"serializer:json;type:text"           bson:"item_associated"    json:"item_associated"`
	UserID      string      `gorm:"index;not null;type:varchar(36)"     bson:"user_associated"    json:"user_associated"`
	Status      string      `gorm:"not null;default:pending"            bson:"status"             json:"status"`
	TotalAmount float64     `gorm:"not null"                            bson:"totalAmount"        json:"totalAmount"`
	CreatedAt   time.Time   `                                           bson:"createdAt"          json:"createdAt"`
	UpdatedAt   time.Time   `                                           bson:"updatedAt"          json:"updatedAt"`
}

func (o *Order) Normalize() {
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
}

func (o *Order) AfterFind(*gorm.DB) error {
	o.Normalize()
	return nil
}

func (o *Order) Contains(productID string) bool {
	return slices.ContainsFunc(o.Items, func(it OrderItem) bool { return it.ProductID == productID })
}

// OrderView expands user_associated into the purchasing user. User is nil
// when the user was deleted after ordering.
type OrderView struct {
	Order
	User *User `json:"user_associated"`
}
