package auth

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"folio/models"
)

const tokenTTL = 7 * 24 * time.Hour

// Claims is the payload carried by every issued token.
type Claims struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthModule struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthModule(db *gorm.DB) *AuthModule {
	return &AuthModule{
		db:     db,
		secret: []byte(os.Getenv("JWT_SECRET")),
	}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth", a.authPost)
	router.GET("/api/auth", a.verify)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (a *AuthModule) generateToken(userID int, username string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// verifyToken returns nil on any failure. Callers treat the absence of a
// claim as unauthenticated; the reason is never distinguished.
func (a *AuthModule) verifyToken(tokenStr string) *Claims {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// Authenticate resolves the Authorization: Bearer header on the request to a
// claim, or nil when the header is absent, malformed or the token is invalid.
func (a *AuthModule) Authenticate(c *gin.Context) *Claims {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	return a.verifyToken(strings.TrimPrefix(header, "Bearer "))
}

// RequireAuth gates mutating routes behind a valid bearer token.
func (a *AuthModule) RequireAuth(c *gin.Context) {
	claims := a.Authenticate(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Set("claims", claims)
	c.Next()
}

type authRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthModule) authPost(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	switch req.Action {
	case "login":
		a.login(c, req)
	case "register":
		a.register(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

func (a *AuthModule) login(c *gin.Context, req authRequest) {
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	// the submitted identifier may be a username or an email
	var user models.User
	err := a.db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Auth API error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !checkPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := a.generateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Auth API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (a *AuthModule) register(c *gin.Context, req authRequest) {
	var count int64
	if err := a.db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Auth API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Bootstrap rule: only the very first user may register unauthenticated.
	// Every later registration needs a valid token from an existing user.
	if count > 0 && a.Authenticate(c) == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email, and password are required"})
		return
	}

	var existing models.User
	if err := a.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("Auth API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := a.db.Create(&user).Error; err != nil {
		log.Printf("Auth API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := a.generateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Auth API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (a *AuthModule) verify(c *gin.Context) {
	claims := a.Authenticate(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": claims})
}
