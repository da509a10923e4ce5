package model

import (
	"time"
)

/*

Follow is a directed subscription between two users

Id: primary key
CreatedAt: time when relation is created
UserID: the follower, always the authenticated identity
FollowingID: the followed user, supplied by the client as a username

The (UserID, FollowingID) pair carries a unique index; the database is the
source of truth for duplicate rejection, request-time validation is only the
fast path.

*/

type Follow struct {
	Id          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UserID      string `gorm:"not null;index;uniqueIndex:idx_user_following"`
	User        User   `gorm:"constraint:OnDelete:CASCADE;"`
	FollowingID string `gorm:"not null;index;uniqueIndex:idx_user_following"`
	Following   User   `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE;"`
}
