package routes

import (
	"github.com/brijdaniel/RR-backend/controllers"
	"github.com/brijdaniel/RR-backend/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
	}

	checklists := r.Group("/checklists")
	checklists.Use(middlewares.AuthMiddleware())
	{
		checklists.GET("", controllers.ListChecklists)
		checklists.POST("", controllers.CreateChecklist)
		checklists.POST("/:id/complete", controllers.CompleteChecklist)
		checklists.GET("/:id/regrets", controllers.ListRegrets)
		checklists.POST("/:id/regrets", controllers.CreateRegret)
		checklists.PATCH("/:id/regrets/:regretId", controllers.UpdateRegret)
		checklists.PUT("/:id/regrets/:regretId", controllers.UpdateRegret)
	}

	network := r.Group("/network")
	network.Use(middlewares.AuthMiddleware())
	{
		network.GET("/validate/:username", controllers.ValidateNetworkUser)
		network.POST("/follow/:username", controllers.FollowUser)
		network.DELETE("/unfollow/:username", controllers.UnfollowUser)
		network.GET("/list/:relation", controllers.ListNetwork)
		network.PATCH("/settings", controllers.UpdateNetworkSettings)
	}

	return r
}
