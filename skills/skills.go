package skills

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

type SkillsModule struct {
	db   *gorm.DB
	auth *auth.AuthModule
}

func NewSkillsModule(db *gorm.DB, authModule *auth.AuthModule) *SkillsModule {
	return &SkillsModule{db: db, auth: authModule}
}

func (s *SkillsModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/skills", s.list)
	router.POST("/api/skills", s.auth.RequireAuth, s.create)
	router.PUT("/api/skills", s.auth.RequireAuth, s.update)
	router.PUT("/api/skills/:id", s.auth.RequireAuth, s.update)
	router.DELETE("/api/skills", s.auth.RequireAuth, s.delete)
	router.DELETE("/api/skills/:id", s.auth.RequireAuth, s.delete)
}

func (s *SkillsModule) list(c *gin.Context) {
	var skills []models.Skill
	if err := s.db.Order("order_index ASC").Find(&skills).Error; err != nil {
		log.Printf("Skills API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": skills})
}

type skillInput struct {
	ID         *int      `json:"id"`
	Category   *string   `json:"category"`
	Items      *[]string `json:"items"`
	OrderIndex *int      `json:"order_index"`
}

func (s *SkillsModule) create(c *gin.Context) {
	var in skillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if in.Category == nil || in.Items == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	skill := models.Skill{
		Category: *in.Category,
		Items:    *in.Items,
	}
	if in.OrderIndex != nil {
		skill.OrderIndex = *in.OrderIndex
	}

	if err := s.db.Create(&skill).Error; err != nil {
		log.Printf("Skills API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": skill})
}

func (s *SkillsModule) update(c *gin.Context) {
	var in skillInput
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

	var skill models.Skill
	if err := s.db.First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
			return
		}
		log.Printf("Skills API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if in.Category != nil {
		skill.Category = *in.Category
	}
	if in.Items != nil {
		skill.Items = *in.Items
	}
	if in.OrderIndex != nil {
		skill.OrderIndex = *in.OrderIndex
	}

	if err := s.db.Save(&skill).Error; err != nil {
		log.Printf("Skills API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": skill})
}

func (s *SkillsModule) delete(c *gin.Context) {
	id := common.IDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	if err := s.db.Delete(&models.Skill{}, "id = ?", id).Error; err != nil {
		log.Printf("Skills API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}
