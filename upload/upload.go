package upload

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"folio/auth"
	"folio/storage"
)

const maxFileSize = 5 << 20 // 5MB

type UploadModule struct {
	auth  *auth.AuthModule
	store storage.Provider
}

func NewUploadModule(authModule *auth.AuthModule, store storage.Provider) *UploadModule {
	return &UploadModule{auth: authModule, store: store}
}

func (u *UploadModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/upload", u.auth.RequireAuth, u.upload)
}

// uploadFilename builds a collision-resistant name: timestamp, random
// suffix, original extension.
func uploadFilename(original string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, filepath.Ext(original))
}

func (u *UploadModule) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 5MB)"})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("Upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	defer src.Close()

	filename := uploadFilename(file.Filename)
	url, err := u.store.Put(filename, src, file.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      url,
		"filename": filename,
	})
}
