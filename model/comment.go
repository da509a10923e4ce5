package model

import (
	"time"
)

/*

Comment is a data model for a comment under a post

Id: primary key
Text: body of the comment, required
Created: server assigned creation time, indexed for ordering
AuthorID: user who wrote the comment, set from the authenticated identity
PostID: post this comment belongs to, resolved from the URL path on creation
and never writable afterwards

*/

type Comment struct {
	Id       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"<-:create;autoCreateTime;index"`
	AuthorID string    `gorm:"<-:create;not null;index"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE;"`
	PostID   uint      `gorm:"<-:create;not null;index"`
	Post     *Post     `gorm:"constraint:OnDelete:CASCADE;"`
}
