package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;type:varchar(100)" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(120)" json:"email"`
	PasswordHash string    `gorm:"not null;type:varchar(255)" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// Address 使用者目前的收件地址
type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	FullName    string    `gorm:"not null;type:varchar(100)" json:"full_name"`
	PhoneNumber string    `gorm:"not null;type:varchar(20)" json:"phone_number"`
	Pincode     string    `gorm:"not null;type:varchar(10)" json:"pincode"`
	State       string    `gorm:"not null;type:varchar(50)" json:"state"`
	City        string    `gorm:"not null;type:varchar(50)" json:"city"`
	House       string    `gorm:"not null;type:varchar(100)" json:"house"`
	Area        string    `gorm:"not null;type:varchar(100)" json:"area"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
