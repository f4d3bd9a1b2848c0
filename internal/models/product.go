package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"           json:"id"`
	Name         string    `gorm:"not null"                    bson:"name"          json:"name"`
	Price        float64   `gorm:"not null"                    bson:"price"         json:"price"`
	Rating       float64   `gorm:"not null;default:0"          bson:"rating"        json:"rating"`
	RateComments []string  `gorm:"serializer:json;type:text"   bson:"rate_comments" json:"rate_comments"`
	Description  string    `                                   bson:"description"   json:"description"`
	Images       []string  `gorm:"serializer:json;type:text"   bson:"images"        json:"images"`
	Category     string    `gorm:"index"                       bson:"category"      json:"category"`
	Stock        int       `gorm:"not null;default:0"          bson:"stock"         json:"stock"`
	CreatedAt    time.Time `                                   bson:"createdAt"     json:"createdAt"`
	UpdatedAt    time.Time `                                   bson:"updatedAt"     json:"updatedAt"`
}

func (p *Product) Normalize() {
	if p.RateComments == nil {
		p.RateComments = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

func (p *Product) AfterFind(*gorm.DB) error {
	p.Normalize()
	return nil
}
