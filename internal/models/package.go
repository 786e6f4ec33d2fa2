package models

import (
	"time"
)

// Package types
const (
	PackageSilver   = "SILVER"
	PackageGold     = "GOLD"
	PackagePlatinum = "PLATINUM"
)

// Package is a priced tier granting course access and affiliate rate
// eligibility. Commission rates are stored here and loaded per purchase;
// there is no fallback rate table keyed by package name.
type Package struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Type         string    `gorm:"column:type;size:20;not null;uniqueIndex" json:"type"`
	Name         string    `gorm:"column:name;size:100;not null" json:"name"`
	Price        float64   `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	DirectRate   float64   `gorm:"column:direct_rate;type:decimal(5,2);not null" json:"direct_rate"`
	IndirectRate float64   `gorm:"column:indirect_rate;type:decimal(5,2);not null" json:"indirect_rate"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Package) TableName() string {
	return "packages"
}
