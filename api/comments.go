package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feather-works/feather-backend/model"
	"github.com/feather-works/feather-backend/server/middlewares"
)

// Comments are a nested resource: every operation first resolves the parent
// post from the path and fails with 404 before any comment logic runs.

func ListCommentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := resolveParentPost(c, db)
		if !ok {
			return
		}
		p, ok := parsePagination(c)
		if !ok {
			return
		}

		query := db.Preload("Author").Where("post_id = ?", post.Id).Order("created, id")
		var comments []model.Comment
		if p.enabled {
			var count int64
			if err := db.Model(&model.Comment{}).Where("post_id = ?", post.Id).Count(&count).Error; err != nil {
				abortServerError(c, err)
				return
			}
			if err := query.Limit(p.limit).Offset(p.offset).Find(&comments).Error; err != nil {
				abortServerError(c, err)
				return
			}
			c.JSON(http.StatusOK, envelope(c, p, count, serializeComments(comments)))
			return
		}

		if err := query.Find(&comments).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeComments(comments))
	}
}

func RetrieveCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := resolveParentPost(c, db)
		if !ok {
			return
		}
		comment, ok := fetchComment(c, db, post)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, serializeComment(comment))
	}
}

// CreateCommentHandler attaches a new comment to the path-resolved post.
// Both author and post come from the server side; body values for either are
// ignored.
func CreateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := resolveParentPost(c, db)
		if !ok {
			return
		}
		user, _ := middlewares.CurrentUser(c)

		comment := model.Comment{AuthorID: user.Id, PostID: post.Id}
		if !applyCommentInput(c, &comment, false) {
			return
		}
		if err := db.Omit(clause.Associations).Create(&comment).Error; err != nil {
			abortServerError(c, err)
			return
		}
		comment.Author = user
		c.JSON(http.StatusCreated, serializeComment(&comment))
	}
}

func UpdateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := resolveParentPost(c, db)
		if !ok {
			return
		}
		comment, ok := fetchComment(c, db, post)
		if !ok {
			return
		}
		user, _ := middlewares.CurrentUser(c)
		if !IsAuthorOrReadOnly(c.Request.Method, comment.AuthorID, user.Id) {
			abortForbidden(c)
			return
		}

		partial := c.Request.Method == http.MethodPatch
		if !applyCommentInput(c, comment, partial) {
			return
		}
		if err := db.Omit(clause.Associations).Save(comment).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeComment(comment))
	}
}

func DeleteCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := resolveParentPost(c, db)
		if !ok {
			return
		}
		comment, ok := fetchComment(c, db, post)
		if !ok {
			return
		}
		user, _ := middlewares.CurrentUser(c)
		if !IsAuthorOrReadOnly(c.Request.Method, comment.AuthorID, user.Id) {
			abortForbidden(c)
			return
		}

		if err := db.Delete(comment).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// resolveParentPost loads the post addressed by the :id path segment of the
// nested comment routes.
func resolveParentPost(c *gin.Context, db *gorm.DB) (*model.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortNotFound(c)
		return nil, false
	}
	var post model.Post
	if err := db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c)
		} else {
			abortServerError(c, err)
		}
		return nil, false
	}
	return &post, true
}

// fetchComment loads a comment scoped to the parent post; a comment id that
// exists under a different post is still a 404 here.
func fetchComment(c *gin.Context, db *gorm.DB, post *model.Post) (*model.Comment, bool) {
	id, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		abortNotFound(c)
		return nil, false
	}
	var comment model.Comment
	err = db.Preload("Author").Where("post_id = ?", post.Id).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c)
		} else {
			abortServerError(c, err)
		}
		return nil, false
	}
	return &comment, true
}

func applyCommentInput(c *gin.Context, comment *model.Comment, partial bool) bool {
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
			comment.Text = *text
		}
	} else if !partial {
		errs.add("text", "This field is required.")
	}

	if len(errs) > 0 {
		abortValidation(c, errs)
		return false
	}
	return true
}
