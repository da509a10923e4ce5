package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feather-works/feather-backend/model"
	"github.com/feather-works/feather-backend/server/middlewares"
)

// ListFollowsHandler lists the acting user's subscriptions. Other users'
// rows are never visible, whatever filters the caller supplies. Supports
// ?following=<username> and ?search=<text> over both usernames.
func ListFollowsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)
		p, ok := parsePagination(c)
		if !ok {
			return
		}

		tx := db.Model(&model.Follow{}).Where("user_id = ?", user.Id)
		if followee := c.Query("following"); followee != "" {
			tx = tx.Where("following_id IN (?)",
				db.Model(&model.User{}).Select("id").Where("username = ?", followee))
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			tx = tx.Where("user_id IN (?) OR following_id IN (?)",
				db.Model(&model.User{}).Select("id").Where("username LIKE ?", pattern),
				db.Model(&model.User{}).Select("id").Where("username LIKE ?", pattern))
		}
		tx = tx.Session(&gorm.Session{})

		var follows []model.Follow
		if p.enabled {
			var count int64
			if err := tx.Count(&count).Error; err != nil {
				abortServerError(c, err)
				return
			}
			err := tx.Preload("User").Preload("Following").
				Order("id").Limit(p.limit).Offset(p.offset).Find(&follows).Error
			if err != nil {
				abortServerError(c, err)
				return
			}
			c.JSON(http.StatusOK, envelope(c, p, count, serializeFollows(follows)))
			return
		}

		if err := tx.Preload("User").Preload("Following").Order("id").Find(&follows).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeFollows(follows))
	}
}

// CreateFollowHandler subscribes the acting user to the user named in the
// body. The request-time duplicate check is only the fast path; the unique
// index is authoritative and its violation maps to the same response.
func CreateFollowHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)

		fields, ok := bindJSONFields(c)
		if !ok {
			return
		}

		raw, present := fields["following"]
		if !present {
			abortValidation(c, FieldErrors{"following": {"This field is required."}})
			return
		}
		username, err := stringField(raw)
		if err != nil || username == nil || *username == "" {
			abortValidation(c, FieldErrors{"following": {"This field may not be blank."}})
			return
		}

		var followee model.User
		if err := db.Where("username = ?", *username).First(&followee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortValidation(c, FieldErrors{"following": {
					fmt.Sprintf("User with username %q does not exist.", *username),
				}})
			} else {
				abortServerError(c, err)
			}
			return
		}

		if followee.Id == user.Id {
			abortValidation(c, FieldErrors{"following": {"You cannot subscribe to yourself."}})
			return
		}

		duplicateResponse := FieldErrors{"following": {"You are already subscribed to this author."}}

		var existing model.Follow
		err = db.Where("user_id = ? AND following_id = ?", user.Id, followee.Id).First(&existing).Error
		if err == nil {
			abortValidation(c, duplicateResponse)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			abortServerError(c, err)
			return
		}

		follow := model.Follow{UserID: user.Id, FollowingID: followee.Id}
		if err := db.Omit(clause.Associations).Create(&follow).Error; err != nil {
			// A concurrent request may have won the race past the fast-path
			// check; the unique index reports it and the client sees the
			// same validation failure either way.
			if isUniqueViolation(err) {
				abortValidation(c, duplicateResponse)
			} else {
				abortServerError(c, err)
			}
			return
		}

		follow.User = user
		follow.Following = followee
		c.JSON(http.StatusCreated, serializeFollow(&follow))
	}
}
