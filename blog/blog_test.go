package blog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/auth"
	"folio/cache"
	"folio/models"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>My Writing</title>
    <item>
      <title>First Post</title>
      <link>https://example.com/first</link>
      <guid>post-1</guid>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <dc:creator>Jane Writer</dc:creator>
      <category>go</category>
      <category>web</category>
      <description>&lt;p&gt;Hello   &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/second</link>
      <description>Short one</description>
    </item>
  </channel>
</rss>`

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, string) {
	t.Setenv("JWT_SECRET", "test-secret")
	cache.Dir = filepath.Join(t.TempDir(), "feeds")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.BlogSettings{})

	authModule := auth.NewAuthModule(db)
	module := NewBlogModule(db, authModule)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	authModule.RegisterRoutes(router)
	module.RegisterRoutes(router)

	payload, _ := json.Marshal(gin.H{
		"action":   "register",
		"username": "admin",
		"email":    "admin@example.com",
		"password": "password123",
	})
	req, _ := http.NewRequest("POST", "/api/auth", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return db, router, resp["token"].(string)
}

func doJSON(router *gin.Engine, method, path string, body gin.H, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func feedServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeedXML))
	}))
	t.Cleanup(server.Close)
	return server
}

func createSettings(db *gorm.DB, rssURL string, enabled bool) {
	db.Create(&models.BlogSettings{
		Platform: "medium",
		RssURL:   rssURL,
		Username: "fallback-user",
		Enabled:  enabled,
	})
}

func TestFeed_NoSettings(t *testing.T) {
	_, router, _ := setupTest(t)

	w := doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Empty(t, resp["data"])
	assert.Nil(t, resp["settings"])
}

func TestFeed_DisabledSettingsIgnored(t *testing.T) {
	db, router, _ := setupTest(t)

	createSettings(db, "https://example.com/feed", false)

	w := doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, resp["settings"])
}

func TestFeed_MapsEntries(t *testing.T) {
	db, router, _ := setupTest(t)

	server := feedServer(t)
	createSettings(db, server.URL, true)

	w := doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data     []map[string]interface{} `json:"data"`
		Settings map[string]interface{}   `json:"settings"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Equal(t, 2, len(resp.Data))
	assert.Equal(t, "medium", resp.Settings["platform"])

	first := resp.Data[0]
	assert.Equal(t, "First Post", first["title"])
	assert.Equal(t, "https://example.com/first", first["link"])
	assert.Equal(t, "post-1", first["guid"])
	assert.Equal(t, "Jane Writer", first["author"])
	assert.Equal(t, "Hello world...", first["contentSnippet"])

	second := resp.Data[1]
	assert.Equal(t, "fallback-user", second["author"])
	// guid falls back to the link
	assert.Equal(t, "https://example.com/second", second["guid"])
}

func TestFeed_FetchFailureDegrades(t *testing.T) {
	db, router, _ := setupTest(t)

	server := feedServer(t)
	server.Close()
	createSettings(db, server.URL, true)

	w := doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Empty(t, resp["data"])
	assert.Equal(t, "Failed to fetch blog posts", resp["error"])
	assert.NotNil(t, resp["settings"])
}

func TestFeed_SecondRequestServedFromCache(t *testing.T) {
	db, router, _ := setupTest(t)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testFeedXML))
	}))
	t.Cleanup(server.Close)
	createSettings(db, server.URL, true)

	w := doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/blog", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First Post")

	assert.Equal(t, 1, hits)
}

func TestUpdateSettings_Unauthorized(t *testing.T) {
	_, router, _ := setupTest(t)

	w := doJSON(router, "POST", "/api/blog", gin.H{
		"platform": "medium",
		"rss_url":  "https://example.com/feed",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateSettings_Validation(t *testing.T) {
	_, router, token := setupTest(t)

	w := doJSON(router, "POST", "/api/blog", gin.H{"platform": "medium"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Platform and RSS URL are required")

	w = doJSON(router, "POST", "/api/blog", gin.H{
		"platform": "wordpress",
		"rss_url":  "https://example.com/feed",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "medium")
}

func TestUpdateSettings_UpsertSingleRow(t *testing.T) {
	db, router, token := setupTest(t)

	w := doJSON(router, "POST", "/api/blog", gin.H{
		"platform": "medium",
		"rss_url":  "https://example.com/feed",
		"username": "me",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var created models.BlogSettings
	db.First(&created)
	assert.True(t, created.Enabled)

	w = doJSON(router, "PUT", "/api/blog", gin.H{
		"platform": "substack",
		"rss_url":  "https://other.example.com/feed",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.BlogSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var updated models.BlogSettings
	db.First(&updated)
	assert.Equal(t, "substack", updated.Platform)
	// enabled was omitted and keeps its stored value
	assert.True(t, updated.Enabled)
	// username was omitted and keeps its stored value
	assert.Equal(t, "me", updated.Username)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "", snippet(""))
	assert.Equal(t, "plain text...", snippet("plain text"))
	assert.Equal(t, "Hello world...", snippet("<p>Hello   <b>world</b></p>"))

	long := bytes.Repeat([]byte("a"), 300)
	out := snippet(string(long))
	assert.Equal(t, 203, len(out))
}
