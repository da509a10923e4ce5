package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feather-works/feather-backend/file_store"
	"github.com/feather-works/feather-backend/server/middlewares"
)

// RegisterRoutes wires the whole API surface onto router. Read endpoints on
// posts, groups and comments serve anonymous callers; unsafe methods and
// everything under /follow/ sit behind LoginRequired.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, images file_store.FileStore) {
	router.Use(middlewares.TokenAuth(db))

	v1 := router.Group("/api/v1")

	v1.POST("/api-token-auth/", ObtainAuthTokenHandler(db))

	posts := v1.Group("/posts")
	posts.GET("/", ListPostsHandler(db, images))
	posts.POST("/", middlewares.LoginRequired(), CreatePostHandler(db, images))
	posts.GET("/:id/", RetrievePostHandler(db, images))
	posts.PUT("/:id/", middlewares.LoginRequired(), UpdatePostHandler(db, images))
	posts.PATCH("/:id/", middlewares.LoginRequired(), UpdatePostHandler(db, images))
	posts.DELETE("/:id/", middlewares.LoginRequired(), DeletePostHandler(db))

	comments := posts.Group("/:id/comments")
	comments.GET("/", ListCommentsHandler(db))
	comments.POST("/", middlewares.LoginRequired(), CreateCommentHandler(db))
	comments.GET("/:comment_id/", RetrieveCommentHandler(db))
	comments.PUT("/:comment_id/", middlewares.LoginRequired(), UpdateCommentHandler(db))
	comments.PATCH("/:comment_id/", middlewares.LoginRequired(), UpdateCommentHandler(db))
	comments.DELETE("/:comment_id/", middlewares.LoginRequired(), DeleteCommentHandler(db))

	groups := v1.Group("/groups")
	groups.GET("/", ListGroupsHandler(db))
	groups.GET("/:slug/", RetrieveGroupHandler(db))

	follow := v1.Group("/follow", middlewares.LoginRequired())
	follow.GET("/", ListFollowsHandler(db))
	follow.POST("/", CreateFollowHandler(db))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Feather server - API not found."})
	})
}
