package blog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"gorm.io/gorm"

	"folio/auth"
	"folio/cache"
	"folio/models"
)

const (
	feedFetchTimeout = 10 * time.Second
	feedCacheTTL     = 5 * time.Minute
	snippetLength    = 200
)

// BlogModule proxies the configured RSS feed (Medium or Substack) into JSON
// for the public site and manages the single blog-settings row.
type BlogModule struct {
	db     *gorm.DB
	auth   *auth.AuthModule
	parser *gofeed.Parser
}

func NewBlogModule(db *gorm.DB, authModule *auth.AuthModule) *BlogModule {
	return &BlogModule{
		db:     db,
		auth:   authModule,
		parser: gofeed.NewParser(),
	}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/blog", b.feed)
	router.POST("/api/blog", b.auth.RequireAuth, b.updateSettings)
	router.PUT("/api/blog", b.auth.RequireAuth, b.updateSettings)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// snippet strips markup and whitespace runs from a feed entry body and
// truncates it for the post list.
func snippet(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes) + "..."
}

func itemAuthor(item *gofeed.Item, fallback string) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 && item.DublinCoreExt.Creator[0] != "" {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return fallback
}

func mapPosts(feed *gofeed.Feed, settings models.BlogSettings) []gin.H {
	posts := make([]gin.H, 0, len(feed.Items))
	for _, item := range feed.Items {
		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}

		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}

		body := item.Description
		if body == "" {
			body = item.Content
		}

		posts = append(posts, gin.H{
			"title":          item.Title,
			"link":           item.Link,
			"pubDate":        item.Published,
			"author":         itemAuthor(item, settings.Username),
			"contentSnippet": snippet(body),
			"categories":     categories,
			"guid":           guid,
		})
	}
	return posts
}

// feed never fails the request: a broken or unreachable feed degrades to an
// empty list with an error flag so the page still renders.
func (b *BlogModule) feed(c *gin.Context) {
	var settings models.BlogSettings
	err := b.db.Where("enabled = ?", true).Order("id DESC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{}, "settings": nil})
			return
		}
		log.Printf("Blog API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	settingsView := gin.H{
		"platform": settings.Platform,
		"username": settings.Username,
	}

	if cached, found := cache.Read(settings.RssURL, feedCacheTTL); found {
		c.JSON(http.StatusOK, gin.H{
			"data":     json.RawMessage(cached),
			"settings": settingsView,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), feedFetchTimeout)
	defer cancel()

	feed, err := b.parser.ParseURLWithContext(settings.RssURL, ctx)
	if err != nil {
		log.Printf("RSS feed parsing error: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"data":     []gin.H{},
			"error":    "Failed to fetch blog posts",
			"settings": settingsView,
		})
		return
	}

	posts := mapPosts(feed, settings)

	if payload, err := json.Marshal(posts); err == nil {
		if err := cache.Write(settings.RssURL, payload); err != nil {
			log.Printf("feed cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     posts,
		"settings": settingsView,
	})
}

type settingsInput struct {
	Platform string  `json:"platform"`
	RssURL   string  `json:"rss_url"`
	Username *string `json:"username"`
	Enabled  *bool   `json:"enabled"`
}

func (b *BlogModule) updateSettings(c *gin.Context) {
	var in settingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if in.Platform == "" || in.RssURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform and RSS URL are required"})
		return
	}
	if in.Platform != "medium" && in.Platform != "substack" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Platform must be "medium" or "substack"`})
		return
	}

	var settings models.BlogSettings
	err := b.db.First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Blog API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)

	oldURL := settings.RssURL

	settings.Platform = in.Platform
	settings.RssURL = in.RssURL
	if in.Username != nil {
		settings.Username = *in.Username
	}
	if in.Enabled != nil {
		settings.Enabled = *in.Enabled
	} else if created {
		settings.Enabled = true
	}

	if err := b.db.Save(&settings).Error; err != nil {
		log.Printf("Blog API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// a stale cached list must not survive a settings change
	cache.Clear(settings.RssURL)
	if oldURL != "" && oldURL != settings.RssURL {
		cache.Clear(oldURL)
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}
