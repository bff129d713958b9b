package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
	"github.com/nkozi444/CampusGo/internal/services"
	"github.com/nkozi444/CampusGo/internal/session"
	"github.com/nkozi444/CampusGo/pkg/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and its role record. The role is assigned
// by the registration rule, never taken from the client.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user := models.User{
			Email:    input.Email,
			Password: input.Password,
			Role:     models.AssignRoleForEmail(input.Email),
		}
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create user: " + result.Error.Error()})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		state := session.State{IsLoggedIn: true, Role: user.Role}
		c.JSON(201, gin.H{
			"message": "Account created as " + string(user.Role),
			"token":   token,
			"route":   session.RouteFor(state),
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

// Login authenticates a user, resolves the role record, caches the
// session flags, and returns the role-scoped route.
func Login(db *gorm.DB, resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		state, err := resolver.Resolve(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(404, gin.H{"error": "User data not found in database"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"route": session.RouteFor(state),
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"role":  state.Role,
			},
		})
	}
}

// GetSession resolves the current session state for cold-start routing.
// Clients call this before rendering any role-specific screen.
func GetSession(resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		state, err := resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			c.JSON(404, gin.H{"error": "User data not found in database"})
			return
		}

		c.JSON(200, gin.H{
			"isLoggedIn": state.IsLoggedIn,
			"role":       state.Role,
			"route":      session.RouteFor(state),
		})
	}
}

// Logout clears the cached session flags.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		if err := services.ClearSession(c.Request.Context(), userID); err != nil {
			c.JSON(500, gin.H{"error": "Failed to clear session"})
			return
		}

		c.JSON(200, gin.H{"message": "Signed out"})
	}
}
