// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationType enumerates the kinds of notification the platform emits.
type NotificationType string

const (
	// NotificationTypeLike is emitted when a user likes a post.
	NotificationTypeLike NotificationType = "like"
)

// Notification records an interaction directed at a user. Created on like
// only; unliking never produces one.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	FromID    uint             `gorm:"not null;index" json:"from_id"`
	From      User             `gorm:"foreignKey:FromID" json:"from"`
	ToID      uint             `gorm:"not null;index" json:"to_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
