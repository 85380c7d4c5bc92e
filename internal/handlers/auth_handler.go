package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/models"
)

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	BusinessName string `json:"business_name" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var existingPartner models.Partner
	if result := gormDB.Where("email = ?", req.Email).First(&existingPartner); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "Partner already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	partner := models.Partner{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hashedPassword),
		BusinessName: req.BusinessName,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := gormDB.Create(&partner).Error; err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Partner registered successfully."})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var partner models.Partner
	if err := gormDB.Where("email = ?", req.Email).First(&partner).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(partner.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": partner.ID.String(),
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"partner": gin.H{
			"id":            partner.ID,
			"email":         partner.Email,
			"business_name": partner.BusinessName,
		},
	})
}
