package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/feather-works/feather-backend/api"
	"github.com/feather-works/feather-backend/file_store"
	"github.com/feather-works/feather-backend/utils"
	"github.com/feather-works/feather-backend/utils/dotenv"
	. "github.com/feather-works/feather-backend/utils/flag"
	. "github.com/feather-works/feather-backend/utils/log"
)

const localMediaDir = "media/posts"

func cleanup() {
	Log.Info("api server shutdown")
}

func main() {
	ParseFlags()
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic("failed to connect to database")
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic(err)
	}

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	images, serveLocalMedia, err := buildImageStore()
	if err != nil {
		panic(err)
	}
	if serveLocalMedia {
		router.Static("/media/posts", localMediaDir)
	}

	api.RegisterRoutes(router, db, images)

	Log.Infof("%s starts up", *ServiceName)
	router.Run(":" + *Port)
}

// buildImageStore picks S3 when a bucket is configured and falls back to
// serving post images from local disk otherwise. The second return value
// tells the caller whether the local media route is needed.
func buildImageStore() (file_store.FileStore, bool, error) {
	if bucket := os.Getenv("S3_IMAGE_BUCKET"); bucket != "" {
		store, err := file_store.NewS3FileStore(
			bucket,
			os.Getenv("S3_REGION"),
			os.Getenv("S3_URL_PREFIX"),
		)
		return store, false, err
	}
	store, err := file_store.NewLocalFileStore(localMediaDir, "/media/posts/")
	return store, true, err
}
