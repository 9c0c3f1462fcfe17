package portfolio

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/auth"
	"folio/common"
	"folio/models"
)

type PortfolioModule struct {
	db   *gorm.DB
	auth *auth.AuthModule
}

func NewPortfolioModule(db *gorm.DB, authModule *auth.AuthModule) *PortfolioModule {
	return &PortfolioModule{db: db, auth: authModule}
}

func (p *PortfolioModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/portfolio", p.list)
	router.POST("/api/portfolio", p.auth.RequireAuth, p.create)
	router.PUT("/api/portfolio", p.auth.RequireAuth, p.update)
	router.PUT("/api/portfolio/:id", p.auth.RequireAuth, p.update)
	router.DELETE("/api/portfolio", p.auth.RequireAuth, p.delete)
	router.DELETE("/api/portfolio/:id", p.auth.RequireAuth, p.delete)
}

// list returns the public view: published items only, in display order.
func (p *PortfolioModule) list(c *gin.Context) {
	var items []models.PortfolioItem
	err := p.db.Where("published = ?", true).
		Order("order_index ASC, created_at DESC").
		Find(&items).Error
	if err != nil {
		log.Printf("Portfolio API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

type portfolioInput struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Link        *string `json:"link"`
	Category    *string `json:"category"`
	OrderIndex  *int    `json:"order_index"`
	Published   *bool   `json:"published"`
}

func (p *PortfolioModule) create(c *gin.Context) {
	var in portfolioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if in.Title == nil || in.Description == nil || in.ImageURL == nil || in.Category == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	item := models.PortfolioItem{
		Title:       *in.Title,
		Description: *in.Description,
		ImageURL:    *in.ImageURL,
		Category:    *in.Category,
		Published:   true,
	}
	if in.Link != nil {
		item.Link = *in.Link
	}
	if in.OrderIndex != nil {
		item.OrderIndex = *in.OrderIndex
	}

	if err := p.db.Create(&item).Error; err != nil {
		log.Printf("Portfolio API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (p *PortfolioModule) update(c *gin.Context) {
	var in portfolioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := 0
	if in.ID != nil {
		id = *in.ID
	} else if raw := common.IDParam(c); raw != "" {
		id, _ = strconv.Atoi(raw)
	}
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	var item models.PortfolioItem
	if err := p.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio item not found"})
			return
		}
		log.Printf("Portfolio API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// omitted fields keep their stored value
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Link != nil {
		item.Link = *in.Link
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.OrderIndex != nil {
		item.OrderIndex = *in.OrderIndex
	}
	if in.Published != nil {
		item.Published = *in.Published
	}

	if err := p.db.Save(&item).Error; err != nil {
		log.Printf("Portfolio API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// delete is idempotent: a missing row still reports success.
func (p *PortfolioModule) delete(c *gin.Context) {
	id := common.IDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	if err := p.db.Delete(&models.PortfolioItem{}, "id = ?", id).Error; err != nil {
		log.Printf("Portfolio API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}
