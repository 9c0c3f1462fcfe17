package content

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/auth"
	"folio/models"
)

// ContentModule serves the hero, about and contact blocks. Each block is a
// singleton row: reads return the latest one, writes update the existing row
// or insert the first.
type ContentModule struct {
	db   *gorm.DB
	auth *auth.AuthModule
}

func NewContentModule(db *gorm.DB, authModule *auth.AuthModule) *ContentModule {
	return &ContentModule{db: db, auth: authModule}
}

func (m *ContentModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/content", m.get)
	router.POST("/api/content", m.auth.RequireAuth, m.upsert)
	router.PUT("/api/content", m.auth.RequireAuth, m.upsert)
}

func validType(t string) bool {
	return t == "hero" || t == "about" || t == "contact"
}

func (m *ContentModule) get(c *gin.Context) {
	contentType := c.Query("type")
	if !validType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
		return
	}

	// latest row wins if duplicates ever exist
	var row interface{}
	var err error
	switch contentType {
	case "hero":
		var hero models.HeroContent
		err = m.db.Order("id DESC").First(&hero).Error
		row = hero
	case "about":
		var about models.AboutContent
		err = m.db.Order("id DESC").First(&about).Error
		row = about
	case "contact":
		var contact models.ContactInfo
		err = m.db.Order("id DESC").First(&contact).Error
		row = contact
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"data": nil})
			return
		}
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

type contentInput struct {
	Type string `json:"type"`

	// about
	Content *string `json:"content"`

	// hero
	Title            *string `json:"title"`
	Subtitle         *string `json:"subtitle"`
	CtaPrimaryText   *string `json:"cta_primary_text"`
	CtaPrimaryLink   *string `json:"cta_primary_link"`
	CtaSecondaryText *string `json:"cta_secondary_text"`
	CtaSecondaryLink *string `json:"cta_secondary_link"`

	// contact
	Email    *string `json:"email"`
	Linkedin *string `json:"linkedin"`
	Github   *string `json:"github"`
}

func (m *ContentModule) upsert(c *gin.Context) {
	var in contentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validType(in.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
		return
	}

	switch in.Type {
	case "about":
		m.upsertAbout(c, in)
	case "hero":
		m.upsertHero(c, in)
	case "contact":
		m.upsertContact(c, in)
	}
}

func (m *ContentModule) upsertAbout(c *gin.Context, in contentInput) {
	if in.Content == nil || *in.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	var about models.AboutContent
	err := m.db.First(&about).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	about.Content = *in.Content
	if err := m.db.Save(&about).Error; err != nil {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": about})
}

func (m *ContentModule) upsertHero(c *gin.Context, in contentInput) {
	var hero models.HeroContent
	err := m.db.First(&hero).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// omitted fields keep their stored value
	if in.Title != nil {
		hero.Title = *in.Title
	}
	if in.Subtitle != nil {
		hero.Subtitle = *in.Subtitle
	}
	if in.CtaPrimaryText != nil {
		hero.CtaPrimaryText = *in.CtaPrimaryText
	}
	if in.CtaPrimaryLink != nil {
		hero.CtaPrimaryLink = *in.CtaPrimaryLink
	}
	if in.CtaSecondaryText != nil {
		hero.CtaSecondaryText = *in.CtaSecondaryText
	}
	if in.CtaSecondaryLink != nil {
		hero.CtaSecondaryLink = *in.CtaSecondaryLink
	}

	if err := m.db.Save(&hero).Error; err != nil {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hero})
}

func (m *ContentModule) upsertContact(c *gin.Context, in contentInput) {
	var contact models.ContactInfo
	err := m.db.First(&contact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if in.Email != nil {
		contact.Email = *in.Email
	}
	if in.Linkedin != nil {
		contact.Linkedin = *in.Linkedin
	}
	if in.Github != nil {
		contact.Github = *in.Github
	}

	if err := m.db.Save(&contact).Error; err != nil {
		log.Printf("Content API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contact})
}
