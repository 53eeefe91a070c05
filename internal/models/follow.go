// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed follow edge: FollowerID follows FolloweeID.
// Keeping the relationship in a single table means the followers and
// following views can never disagree.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FolloweeID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
