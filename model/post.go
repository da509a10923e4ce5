package model

import (
	"time"
)

/*

Post is a data model for a publication

Id: primary key
Text: body of the publication, required
PubDate: server assigned publication time, set once at creation
AuthorID: user who created the post, set from the authenticated identity and
never writable afterwards
Image: optional key of an image held in the file store, the relational row
only carries the reference
GroupID: optional group, cleared (SET NULL) when the group is deleted
Comments: comments under this post, removed together with the post

Default ordering for listings is pub_date ascending.

*/

type Post struct {
	Id       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"<-:create;autoCreateTime;index"`
	AuthorID string    `gorm:"<-:create;not null;index"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE;"`
	Image    *string
	GroupID  *uint
	Group    *Group `gorm:"constraint:OnDelete:SET NULL;"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;"`
}
