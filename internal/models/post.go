// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSON text column.
// Order is preserved exactly as submitted.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported StringList column type %T", value)
	}
}

// Post represents a recipe post.
type Post struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	Title string `gorm:"not null" json:"title"`
	// Image is the media-store URL set after a successful upload; null when
	// the post was created without an image.
	Image           *string    `json:"image"`
	Ingredients     StringList `gorm:"type:text;not null" json:"ingredients"`
	Categories      StringList `gorm:"type:text" json:"categories"`
	Description     string     `gorm:"type:text" json:"description"`
	Servings        string     `json:"servings"`
	Instructions    StringList `gorm:"type:text" json:"instructions"`
	PreparationTime string     `json:"preparation_time"`
	CookingTime     string     `json:"cooking_time"`
	VideoLink       *string    `json:"video_link"`

	// Likes is not persisted on the post row; computed from the likes table
	// at query time. Ordered by when each like landed.
	Likes []uint `gorm:"-" json:"likes"`
	// Comments are kept in their own table, returned in insertion order.
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}
