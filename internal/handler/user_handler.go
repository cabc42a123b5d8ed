package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"car-inventory-service/internal/auth"
	"car-inventory-service/internal/model"
	"car-inventory-service/internal/repository"
)

// UserHandler manages signup and login. These are the only unauthenticated
// routes; login is where tokens come from.
type UserHandler struct {
	Store    repository.UserStore
	Verifier *auth.Verifier
	TokenTTL time.Duration
	Log      *zap.Logger
}

// RegisterRoutes binds the user routes onto an open group.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/signup", h.Signup)
	rg.POST("/users/login", h.Login)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, h.Log, "hash password", err)
		return
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.Store.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
			return
		}
		internalError(c, h.Log, "create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.Store.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		internalError(c, h.Log, "find user", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := h.Verifier.Sign(user.ID.Hex(), h.TokenTTL)
	if err != nil {
		internalError(c, h.Log, "sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
