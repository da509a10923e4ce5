package model

/*

Group is a data model for an editorial grouping of posts

Id: primary key
Title: display name, capped at 200 characters
Slug: unique human readable identifier, this is what the API exposes
Description: free form text

Groups are managed administratively. The API surface only ever reads them;
posts reference a group by slug and lose the reference (not their life) when
the group goes away.

*/

type Group struct {
	Id          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}
