package controllers

import (
	"os"
	"time"

	"github.com/TranHuy-99/FoodNest/config"
	"github.com/TranHuy-99/FoodNest/models"
	"github.com/TranHuy-99/FoodNest/utils"
	"github.com/gin-gonic/gin"
)

// EnsureDefaultAdmin creates the bootstrap admin account from environment
// when no admin exists yet.
func EnsureDefaultAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("No admin account and no ADMIN_EMAIL/ADMIN_PASSWORD set, skipping bootstrap")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Admin{Email: email, Password: hash, FirstName: "Admin", IsActive: true}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Bootstrap admin %s created", email)
	return nil
}

func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", utils.SanitizeString(req.Email)).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed, not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin attempted login: %d", admin.ID)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed, wrong password: %d", admin.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Admin token generation failed: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&admin).Update("last_login", time.Now())

	utils.LogInfo("Admin %d logged in successfully", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}
