// Package models contains data structures for the application's domain models.
package models

import "time"

// Like is one edge of the post-likes set. The composite primary key makes
// membership adds idempotent at the storage layer (ON CONFLICT DO NOTHING).
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}
