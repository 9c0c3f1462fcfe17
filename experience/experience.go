package experience

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

type ExperienceModule struct {
	db   *gorm.DB
	auth *auth.AuthModule
}

func NewExperienceModule(db *gorm.DB, authModule *auth.AuthModule) *ExperienceModule {
	return &ExperienceModule{db: db, auth: authModule}
}

func (e *ExperienceModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/experiences", e.list)
	router.POST("/api/experiences", e.auth.RequireAuth, e.create)
	router.PUT("/api/experiences", e.auth.RequireAuth, e.update)
	router.PUT("/api/experiences/:id", e.auth.RequireAuth, e.update)
	router.DELETE("/api/experiences", e.auth.RequireAuth, e.delete)
	router.DELETE("/api/experiences/:id", e.auth.RequireAuth, e.delete)
}

func (e *ExperienceModule) list(c *gin.Context) {
	var experiences []models.Experience
	if err := e.db.Order("order_index ASC").Find(&experiences).Error; err != nil {
		log.Printf("Experiences API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": experiences})
}

type experienceInput struct {
	ID          *int    `json:"id"`
	JobTitle    *string `json:"job_title"`
	Company     *string `json:"company"`
	Period      *string `json:"period"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
}

func (e *ExperienceModule) create(c *gin.Context) {
	var in experienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if in.JobTitle == nil || in.Company == nil || in.Period == nil || in.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	exp := models.Experience{
		JobTitle:    *in.JobTitle,
		Company:     *in.Company,
		Period:      *in.Period,
		Description: *in.Description,
	}
	if in.OrderIndex != nil {
		exp.OrderIndex = *in.OrderIndex
	}

	if err := e.db.Create(&exp).Error; err != nil {
		log.Printf("Experiences API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": exp})
}

func (e *ExperienceModule) update(c *gin.Context) {
	var in experienceInput
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

	var exp models.Experience
	if err := e.db.First(&exp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Experience not found"})
			return
		}
		log.Printf("Experiences API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if in.JobTitle != nil {
		exp.JobTitle = *in.JobTitle
	}
	if in.Company != nil {
		exp.Company = *in.Company
	}
	if in.Period != nil {
		exp.Period = *in.Period
	}
	if in.Description != nil {
		exp.Description = *in.Description
	}
	if in.OrderIndex != nil {
		exp.OrderIndex = *in.OrderIndex
	}

	if err := e.db.Save(&exp).Error; err != nil {
		log.Printf("Experiences API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": exp})
}

func (e *ExperienceModule) delete(c *gin.Context) {
	id := common.IDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	if err := e.db.Delete(&models.Experience{}, "id = ?", id).Error; err != nil {
		log.Printf("Experiences API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Experience deleted"})
}
