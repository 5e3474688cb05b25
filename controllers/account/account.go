package accountControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/auth"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/config"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/flash"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// -------- Core Logic --------

// Signup creates a new user with a bcrypt-hashed password.
func Signup(db *gorm.DB, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, models.ErrInvalidInput
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, models.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials. Unknown username and wrong password both
// come back as ErrInvalidCredentials so callers cannot probe for accounts.
func Authenticate(db *gorm.DB, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return &user, nil
}

// -------- Handlers --------

// GET /signup
func ShowSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Flash": flash.Pop(c)})
	}
}

// POST /signup
func HandleSignup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		_, err := Signup(db, username, password)
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			flash.Set(c, "warning", "Please enter username and password.")
			c.Redirect(http.StatusFound, "/signup")
		case errors.Is(err, models.ErrDuplicateUsername):
			flash.Set(c, "danger", "Username already exists!")
			c.Redirect(http.StatusFound, "/signup")
		case err != nil:
			flash.Set(c, "danger", "Signup failed, please try again.")
			c.Redirect(http.StatusFound, "/signup")
		default:
			flash.Set(c, "success", "Signup successful! Please login.")
			c.Redirect(http.StatusFound, "/login")
		}
	}
}

// GET /login
func ShowLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{"Flash": flash.Pop(c)})
	}
}

// POST /login
func HandleLogin(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		user, err := Authenticate(db, username, password)
		if err != nil {
			flash.Set(c, "danger", "Invalid username or password")
			c.Redirect(http.StatusFound, "/login")
			return
		}

		token, err := auth.IssueSession(cfg.SessionSecret, cfg.SessionTTL, user)
		if err != nil {
			flash.Set(c, "danger", "Login failed, please try again.")
			c.Redirect(http.StatusFound, "/login")
			return
		}

		c.SetCookie(auth.SessionCookie, token, int(cfg.SessionTTL.Seconds()), "/", "", false, true)
		flash.Set(c, "success", "Login successful!")
		c.Redirect(http.StatusFound, "/")
	}
}

// GET /logout
func HandleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
		flash.Set(c, "info", "You have been logged out.")
		c.Redirect(http.StatusFound, "/login")
	}
}
