package routes

import (
	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/middleware"
)

func AuthRoutes(r *gin.Engine, d Deps) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.Auth.Signup)
		auth.POST("/login", d.Auth.Login)
	}

	signedIn := r.Group("/")
	signedIn.Use(middleware.RequireAuth(d.Sessions))
	{
		signedIn.POST("/auth/refresh", d.Auth.Refresh)
		signedIn.POST("/auth/logout", d.Auth.Logout)
		signedIn.GET("/auth/me", d.Auth.Me)
		signedIn.GET("/dashboard", d.Auth.Dashboard)
	}
}
