package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DesignModel mirrors the 'designs' table. Canvas state is kept as jsonb.
type DesignModel struct {
	ID          int64                       `gorm:"primaryKey;autoIncrement"`
	UserID      int64                       `gorm:"index;not null"`
	Title       string                      `gorm:"type:varchar(200);not null"`
	Description *string                     `gorm:"type:text"`
	ImageURL    string                      `gorm:"type:text;not null"`
	Categories  datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	IsPublic    bool                        `gorm:"not null;default:false"`
	IsApproved  bool                        `gorm:"not null;default:false"`
	CanvasJSON  datatypes.JSON              `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DesignModel) TableName() string {
	return "designs"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID        int64                       `gorm:"primaryKey;autoIncrement"`
	Name      string                      `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal             `gorm:"type:numeric(12,2);not null"`
	DesignID  int64                       `gorm:"index;not null"`
	CreatorID int64                       `gorm:"index;not null"`
	Colors    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Sizes     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Category  string                      `gorm:"type:varchar(50);index;not null"`
	ImageURL  string                      `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	UserID    int64   `gorm:"index;not null"`
	ProductID int64   `gorm:"index;not null"`
	Rating    int     `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   *string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
