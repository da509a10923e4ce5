package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feather-works/feather-backend/file_store"
	"github.com/feather-works/feather-backend/model"
	"github.com/feather-works/feather-backend/server/middlewares"
)

// ListPostsHandler returns all posts ordered by publication time. With a
// limit query parameter the response is wrapped in the pagination envelope.
func ListPostsHandler(db *gorm.DB, images file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := parsePagination(c)
		if !ok {
			return
		}

		query := db.Preload("Author").Preload("Group").Order("pub_date, id")
		var posts []model.Post
		if p.enabled {
			var count int64
			if err := db.Model(&model.Post{}).Count(&count).Error; err != nil {
				abortServerError(c, err)
				return
			}
			if err := query.Limit(p.limit).Offset(p.offset).Find(&posts).Error; err != nil {
				abortServerError(c, err)
				return
			}
			c.JSON(http.StatusOK, envelope(c, p, count, serializePosts(posts, images)))
			return
		}

		if err := query.Find(&posts).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializePosts(posts, images))
	}
}

func RetrievePostHandler(db *gorm.DB, images file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := fetchPost(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, serializePost(post, images))
	}
}

// CreatePostHandler creates a post owned by the acting user. Any
// client-supplied author is ignored; the authenticated identity wins.
func CreatePostHandler(db *gorm.DB, images file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)

		post := model.Post{AuthorID: user.Id}
		if !applyPostInput(c, db, images, &post, false) {
			return
		}
		if err := db.Omit(clause.Associations).Create(&post).Error; err != nil {
			abortServerError(c, err)
			return
		}
		post.Author = user
		c.JSON(http.StatusCreated, serializePost(&post, images))
	}
}

// UpdatePostHandler serves both PUT (full) and PATCH (partial) updates,
// gated on authorship.
func UpdatePostHandler(db *gorm.DB, images file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := fetchPost(c, db)
		if !ok {
			return
		}
		user, _ := middlewares.CurrentUser(c)
		if !IsAuthorOrReadOnly(c.Request.Method, post.AuthorID, user.Id) {
			abortForbidden(c)
			return
		}

		partial := c.Request.Method == http.MethodPatch
		if !applyPostInput(c, db, images, post, partial) {
			return
		}
		if err := db.Omit(clause.Associations).Save(post).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializePost(post, images))
	}
}

// DeletePostHandler removes a post and, through the association, all its
// comments.
func DeletePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := fetchPost(c, db)
		if !ok {
			return
		}
		user, _ := middlewares.CurrentUser(c)
		if !IsAuthorOrReadOnly(c.Request.Method, post.AuthorID, user.Id) {
			abortForbidden(c)
			return
		}

		if err := db.Select(clause.Associations).Delete(post).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// fetchPost loads the post addressed by the :id path segment with its author
// and group. Writes a 404 and returns false when it does not exist.
func fetchPost(c *gin.Context, db *gorm.DB) (*model.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortNotFound(c)
		return nil, false
	}
	var post model.Post
	if err := db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c)
		} else {
			abortServerError(c, err)
		}
		return nil, false
	}
	return &post, true
}

// applyPostInput validates the request body and copies accepted fields onto
// post. With partial set, absent fields keep their current value; otherwise
// text is mandatory. Returns false after writing the error response.
func applyPostInput(c *gin.Context, db *gorm.DB, images file_store.FileStore, post *model.Post, partial bool) bool {
	fields, ok := bindJSONFields(c)
	if !ok {
		return false
	}
	errs := FieldErrors{}

	if raw, present := fields["text"]; present {
		text, err := stringField(raw)
		switch {
		case err != nil || text == nil:
			errs.add("text", "This field may not be null.")
		case strings.TrimSpace(*text) == "":
			errs.add("text", "This field may not be blank.")
		default:
			post.Text = *text
		}
	} else if !partial {
		errs.add("text", "This field is required.")
	}

	if raw, present := fields["group"]; present {
		slug, err := stringField(raw)
		if err != nil {
			errs.add("group", "Incorrect type. Expected a group slug.")
		} else if slug == nil {
			post.GroupID = nil
			post.Group = nil
		} else {
			var group model.Group
			if err := db.Where("slug = ?", *slug).First(&group).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					errs.add("group", fmt.Sprintf("Group with slug %q does not exist.", *slug))
				} else {
					abortServerError(c, err)
					return false
				}
			} else {
				post.GroupID = &group.Id
				post.Group = &group
			}
		}
	}

	if raw, present := fields["image"]; present {
		payload, err := stringField(raw)
		if err != nil {
			errs.add("image", "Incorrect type. Expected a base64 encoded image.")
		} else if payload == nil {
			post.Image = nil
		} else {
			key, err := storeImage(images, *payload)
			if err != nil {
				errs.add("image", "Upload a valid image.")
			} else {
				post.Image = &key
			}
		}
	}

	if len(errs) > 0 {
		abortValidation(c, errs)
		return false
	}
	return true
}
