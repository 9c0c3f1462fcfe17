package portfolio

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/auth"
	"folio/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.User{}, &models.PortfolioItem{})
	return db
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, string) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB()
	authModule := auth.NewAuthModule(db)
	module := NewPortfolioModule(db, authModule)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	module.RegisterRoutes(router)

	token := loginToken(t, authModule)
	return db, router, token
}

func loginToken(t *testing.T, authModule *auth.AuthModule) string {
	authRouter := gin.New()
	authModule.RegisterRoutes(authRouter)

	payload, _ := json.Marshal(gin.H{
		"action":   "register",
		"username": "admin",
		"email":    "admin@example.com",
		"password": "password123",
	})
	req, _ := http.NewRequest("POST", "/api/auth", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	authRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp["token"].(string)
}

func createTestItem(db *gorm.DB, title string, orderIndex int, published bool) *models.PortfolioItem {
	item := &models.PortfolioItem{
		Title:       title,
		Description: "A project",
		ImageURL:    "/uploads/img.png",
		Category:    "web",
		OrderIndex:  orderIndex,
		Published:   published,
	}
	db.Create(item)
	return item
}

func doJSON(router *gin.Engine, method, path string, body gin.H, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestList_OnlyPublishedInOrder(t *testing.T) {
	db, router, _ := setupTest(t)

	createTestItem(db, "second", 2, true)
	createTestItem(db, "first", 1, true)
	createTestItem(db, "hidden", 0, false)

	w := doJSON(router, "GET", "/api/portfolio", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.PortfolioItem `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Equal(t, 2, len(resp.Data))
	assert.Equal(t, "first", resp.Data[0].Title)
	assert.Equal(t, "second", resp.Data[1].Title)
}

func TestList_TiesBrokenByNewestFirst(t *testing.T) {
	db, router, _ := setupTest(t)

	older := createTestItem(db, "older", 1, true)
	db.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	createTestItem(db, "newer", 1, true)

	w := doJSON(router, "GET", "/api/portfolio", nil, "")

	var resp struct {
		Data []models.PortfolioItem `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Equal(t, "newer", resp.Data[0].Title)
	assert.Equal(t, "older", resp.Data[1].Title)
}

func TestCreate_Unauthorized(t *testing.T) {
	_, router, _ := setupTest(t)

	w := doJSON(router, "POST", "/api/portfolio", gin.H{
		"title":       "x",
		"description": "y",
		"image_url":   "/img.png",
		"category":    "web",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_Success(t *testing.T) {
	db, router, token := setupTest(t)

	w := doJSON(router, "POST", "/api/portfolio", gin.H{
		"title":       "My Project",
		"description": "Something I built",
		"image_url":   "/uploads/p.png",
		"category":    "web",
	}, token)

	assert.Equal(t, http.StatusCreated, w.Code)

	var saved models.PortfolioItem
	db.First(&saved)
	assert.Equal(t, "My Project", saved.Title)
	assert.True(t, saved.Published)
	assert.Equal(t, 0, saved.OrderIndex)
}

func TestCreate_MissingFields(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "POST", "/api/portfolio", gin.H{"title": "only title"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestUpdate_CoalesceKeepsOmittedFields(t *testing.T) {
	db, router, token := setupTest(t)

	item := createTestItem(db, "original", 3, true)

	w := doJSON(router, "PUT", "/api/portfolio", gin.H{
		"id":    item.ID,
		"title": "renamed",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.PortfolioItem
	db.First(&updated, item.ID)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "A project", updated.Description)
	assert.Equal(t, 3, updated.OrderIndex)
	assert.True(t, updated.Published)
}

func TestUpdate_Unpublish(t *testing.T) {
	db, router, token := setupTest(t)

	item := createTestItem(db, "visible", 0, true)

	w := doJSON(router, "PUT", "/api/portfolio", gin.H{
		"id":        item.ID,
		"published": false,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.PortfolioItem
	db.First(&updated, item.ID)
	assert.False(t, updated.Published)
}

func TestUpdate_IDFromPath(t *testing.T) {
	db, router, token := setupTest(t)

	item := createTestItem(db, "original", 0, true)

	w := doJSON(router, "PUT", "/api/portfolio/1", gin.H{"title": "via path"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.PortfolioItem
	db.First(&updated, item.ID)
	assert.Equal(t, "via path", updated.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "PUT", "/api/portfolio", gin.H{"id": 999, "title": "x"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate_MissingID(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "PUT", "/api/portfolio", gin.H{"title": "x"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ID is required")
}

func TestDelete_RemovesRow(t *testing.T) {
	db, router, token := setupTest(t)

	item := createTestItem(db, "doomed", 0, true)

	w := doJSON(router, "DELETE", "/api/portfolio/1", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio item deleted")

	var gone models.PortfolioItem
	assert.Error(t, db.First(&gone, item.ID).Error)
}

func TestDelete_NonexistentStillSucceeds(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "DELETE", "/api/portfolio/999", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio item deleted")
}

func TestDelete_MissingID(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "DELETE", "/api/portfolio", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
