package api

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/feather-works/feather-backend/file_store"
	"github.com/feather-works/feather-backend/model"
)

// Response shapes. Authors and follow participants are always serialized as
// usernames, never internal ids.

type PostResponse struct {
	Id      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *string   `json:"group"`
}

type CommentResponse struct {
	Id      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type GroupResponse struct {
	Id          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

func serializePost(post *model.Post, images file_store.FileStore) PostResponse {
	resp := PostResponse{
		Id:      post.Id,
		Author:  post.Author.Username,
		Text:    post.Text,
		PubDate: post.PubDate,
	}
	if post.Image != nil {
		url := images.GetUrlFromKey(*post.Image)
		resp.Image = &url
	}
	if post.Group != nil {
		slug := post.Group.Slug
		resp.Group = &slug
	}
	return resp
}

func serializePosts(posts []model.Post, images file_store.FileStore) []PostResponse {
	resp := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, serializePost(&posts[i], images))
	}
	return resp
}

func serializeComment(comment *model.Comment) CommentResponse {
	return CommentResponse{
		Id:      comment.Id,
		Author:  comment.Author.Username,
		Post:    comment.PostID,
		Text:    comment.Text,
		Created: comment.Created,
	}
}

func serializeComments(comments []model.Comment) []CommentResponse {
	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, serializeComment(&comments[i]))
	}
	return resp
}

func serializeGroup(group *model.Group) GroupResponse {
	var resp GroupResponse
	// Field-for-field identical shapes, let copier do the mapping.
	copier.Copy(&resp, group)
	return resp
}

func serializeGroups(groups []model.Group) []GroupResponse {
	resp := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, serializeGroup(&groups[i]))
	}
	return resp
}

func serializeFollow(follow *model.Follow) FollowResponse {
	return FollowResponse{
		User:      follow.User.Username,
		Following: follow.Following.Username,
	}
}

func serializeFollows(follows []model.Follow) []FollowResponse {
	resp := make([]FollowResponse, 0, len(follows))
	for i := range follows {
		resp = append(resp, serializeFollow(&follows[i]))
	}
	return resp
}
