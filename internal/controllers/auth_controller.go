package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ac.Auth.Signup(c.Request.Context(), services.SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	g, err := ac.Auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (ac *AuthController) Refresh(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	g, err := ac.Auth.Refresh(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (ac *AuthController) Logout(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	ac.Auth.Logout(s)
	c.Status(http.StatusNoContent)
}

func (ac *AuthController) Me(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	u, err := ac.Auth.Me(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "session": s})
}

// Dashboard tells the client which screen set the signed-in role gets.
func (ac *AuthController) Dashboard(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	home := "/driver"
	if s.IsAdmin() {
		home = "/admin"
	}
	c.JSON(http.StatusOK, gin.H{"role": s.Role, "home": home})
}
