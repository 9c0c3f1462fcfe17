package main

import (
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"folio/auth"
	"folio/blog"
	"folio/common"
	"folio/content"
	"folio/database"
	"folio/experience"
	"folio/portfolio"
	"folio/skills"
	"folio/storage"
	"folio/upload"
)

func main() {
	godotenv.Load()

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db, "database/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.Use(common.CORS())

	store, uploadDir := buildStorage()
	router.Static("/uploads", uploadDir)

	authModule := auth.NewAuthModule(db)
	authModule.RegisterRoutes(router)

	portfolio.NewPortfolioModule(db, authModule).RegisterRoutes(router)
	skills.NewSkillsModule(db, authModule).RegisterRoutes(router)
	experience.NewExperienceModule(db, authModule).RegisterRoutes(router)
	content.NewContentModule(db, authModule).RegisterRoutes(router)
	blog.NewBlogModule(db, authModule).RegisterRoutes(router)
	upload.NewUploadModule(authModule, store).RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildStorage selects the upload backend: S3 when a bucket is configured,
// the local uploads directory otherwise.
func buildStorage() (storage.Provider, string) {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./public/uploads"
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		log.Println("S3_BUCKET not set - uploads will be stored locally in", uploadDir)
		return storage.NewLocalProvider(uploadDir, "/uploads"), uploadDir
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	}))
	log.Println("uploads will be stored in S3 bucket:", bucket)
	return storage.NewS3Provider(sess, bucket, os.Getenv("S3_PUBLIC_URL")), uploadDir
}
