// Package model holds the gorm records of the local cache. Timestamps are the
// server's and are stored verbatim, so gorm's automatic time tracking is off.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project represents a cached project row.
type Project struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	Title         string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status        string          `gorm:"size:16;index;not null"`
	CreatorID     int64           `gorm:"index"`
	CategoryID    int64           `gorm:"index"`
	ImageURL      string          `gorm:"size:512"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;index"`
	EndDate       time.Time
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the Project model.
func (Project) TableName() string {
	return "projects"
}

// Category represents a cached category row.
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"size:100;index;not null"`
	Description string    `gorm:"type:text"`
	IconURL     string    `gorm:"size:512"`
	Color       string    `gorm:"size:16"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Investment represents a cached investment row.
type Investment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	ProjectID     int64           `gorm:"index;not null"`
	UserID        int64           `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status        string          `gorm:"size:16;index;not null"`
	PaymentMethod string          `gorm:"size:50"`
	TransactionID *string         `gorm:"size:255"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;index"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the Investment model.
func (Investment) TableName() string {
	return "investments"
}

// Comment represents a cached comment row. Deleted comments keep their row.
type Comment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	ProjectID     int64     `gorm:"index;not null"`
	UserID        int64     `gorm:"index;not null"`
	Content       string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	IsReported    bool      `gorm:"not null"`
	IsDeleted     bool      `gorm:"not null"`
	UserName      string    `gorm:"size:100"`
	UserAvatarURL string    `gorm:"size:512"`
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}

// User represents the cached profile of the signed-in user.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false"`
	Username     string    `gorm:"index;not null;size:50"`
	Email        string    `gorm:"index;size:255"`
	PasswordHash string    `gorm:"size:255"`
	Profile      string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Project{}, &Category{}, &Investment{}, &Comment{}, &User{}}
}
