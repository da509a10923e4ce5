package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feather-works/feather-backend/model"
)

// Groups are read-only at the API boundary. They are provisioned
// administratively and addressed by slug.

func ListGroupsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := parsePagination(c)
		if !ok {
			return
		}

		query := db.Order("id")
		var groups []model.Group
		if p.enabled {
			var count int64
			if err := db.Model(&model.Group{}).Count(&count).Error; err != nil {
				abortServerError(c, err)
				return
			}
			if err := query.Limit(p.limit).Offset(p.offset).Find(&groups).Error; err != nil {
				abortServerError(c, err)
				return
			}
			c.JSON(http.StatusOK, envelope(c, p, count, serializeGroups(groups)))
			return
		}

		if err := query.Find(&groups).Error; err != nil {
			abortServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, serializeGroups(groups))
	}
}

func RetrieveGroupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var group model.Group
		if err := db.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortNotFound(c)
			} else {
				abortServerError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, serializeGroup(&group))
	}
}
