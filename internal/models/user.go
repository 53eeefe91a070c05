// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account on the platform.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Password     string  `gorm:"not null" json:"-"`
	FullName     string  `json:"full_name"`
	Bio          string  `json:"bio"`
	Link         string  `json:"link"`
	ProfileImage *string `json:"profile_image"`
	CoverImage   *string `json:"cover_image"`

	// Followers, Following and LikedPosts are not persisted on the user row;
	// they are computed from the follows and likes tables at query time.
	Followers  []uint `gorm:"-" json:"followers,omitempty"`
	Following  []uint `gorm:"-" json:"following,omitempty"`
	LikedPosts []uint `gorm:"-" json:"liked_posts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
