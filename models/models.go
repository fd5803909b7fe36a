package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a food category on the menu
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description"`
	Foods       []Food `json:"foods,omitempty"`
	Blocked     bool   `json:"blocked" gorm:"default:false"`
}

// Food represents a dish available for ordering
type Food struct {
	gorm.Model
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"` // VND
	CategoryID  uint     `json:"category_id"`
	Category    Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string   `json:"image_url"`
	IsActive    bool     `json:"is_active" gorm:"default:true"`
	IsFeatured  bool     `json:"is_featured" gorm:"default:false"`
	Stock       int      `json:"stock"`
	SoldCount   int      `json:"sold_count" gorm:"default:0"`
	Blocked     bool     `json:"blocked" gorm:"default:false"`
}

type Cart struct {
	gorm.Model
	UserID   uint `json:"user_id"`
	User     User `gorm:"foreignKey:UserID" json:"user"`
	FoodID   uint `json:"food_id"`
	Food     Food `gorm:"foreignKey:FoodID" json:"food"`
	Quantity int  `json:"quantity"`
}

// Address represents a delivery address
type Address struct {
	gorm.Model
	UserID     uint   `json:"user_id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	Ward       string `json:"ward"`
	District   string `json:"district"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default" gorm:"default:false"`
}
