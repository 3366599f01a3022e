package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("urgelog_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := handler.NewAPI(db.DB)

	root := r.Group("/api")
	{
		auth := root.Group("/auth")
		{
			auth.POST("/signup", handler.Signup)
			auth.POST("/login", handler.Login)
			auth.POST("/logout", handler.Logout)
			auth.GET("/me", handler.CurrentUser)
		}

		// 需要认证的数据路由
		data := root.Group("")
		data.Use(handler.AuthRequired())
		{
			data.GET("/habits", api.ListHabits)
			data.GET("/habits/:id", api.GetHabit)
			data.POST("/habits", api.CreateHabit)
			data.PUT("/habits/:id", api.UpdateHabit)
			data.DELETE("/habits/:id", api.DeleteHabit)

			data.GET("/cues", api.ListCues)
			data.POST("/cues", api.CreateCue)
			data.DELETE("/cues/:id", api.DeleteCue)

			data.GET("/locations", api.ListLocations)
			data.POST("/locations", api.CreateLocation)
			data.DELETE("/locations/:id", api.DeleteLocation)

			data.GET("/actions", api.ListActions)
			data.GET("/actions/:id", api.GetAction)
			data.POST("/actions", api.CreateAction)
			data.PUT("/actions/:id", api.UpdateAction)
			data.DELETE("/actions/:id", api.DeleteAction)

			data.GET("/logs", api.ListUrgeLogs)
			data.POST("/logs", api.CreateUrgeLog)

			analytics := data.Group("/analytics")
			{
				analytics.GET("/overview", api.GetOverview)
				analytics.GET("/top", api.GetTopRanking)
				analytics.GET("/calendar", api.GetCalendar)
				analytics.GET("/week", api.GetWeek)
				analytics.GET("/day/:key", api.GetDayDetail)
			}
		}
	}

	return r
}
