package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// ListUsers retrieves the user directory. Superadmin only.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.NormalizeRole(c.GetString("role"))
		if role != models.RoleSuperAdmin {
			c.JSON(403, gin.H{"error": "Not allowed"})
			return
		}

		var users []models.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		rows := make([]gin.H, 0, len(users))
		for _, u := range users {
			r := models.NormalizeRole(string(u.Role))
			if r == "" {
				r = models.RoleUser
			}
			rows = append(rows, gin.H{
				"id":      u.ID,
				"email":   u.Email,
				"role":    r,
				"isAdmin": r.IsAdmin(),
			})
		}

		c.JSON(200, rows)
	}
}
