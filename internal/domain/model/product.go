package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
	CategoryKids  Category = "kids"
)

// 価格は通貨の整数単位（セントではない）。決済時に100倍する。
type Product struct {
	ID          string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string                      `gorm:"type:varchar(255);not null" json:"name"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Status      ProductStatus               `gorm:"type:varchar(20);not null;index" json:"status"`
	Price       int64                       `gorm:"not null" json:"price"`
	Images      datatypes.JSONSlice[string] `gorm:"not null" json:"images"`
	Category    Category                    `gorm:"type:varchar(20);not null;index" json:"category"`
	IsFeatured  bool                        `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カートのサムネイルは先頭の画像
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}
