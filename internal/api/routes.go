package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	coachService service.CoachService,
	templateService service.TemplateService,
	planService service.PlanService,
	chatService service.ChatService,
) {
	authHandler := NewAuthHandler(authService, userService, planService)
	userHandler := NewUserHandler(userService)
	coachHandler := NewCoachHandler(coachService)
	templateHandler := NewTemplateHandler(templateService, planService)
	conversationHandler := NewConversationHandler(chatService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public catalogue: anyone can browse templates and coaches.
		apiV1.GET("/plan-templates", templateHandler.ListTemplates)
		apiV1.GET("/plan-templates/:id", templateHandler.GetTemplatePreview)
		apiV1.GET("/coaches", coachHandler.ListCoaches)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me", userHandler.UpdateProfile)
		protected.POST("/me/avatar", userHandler.RequestAvatarUpload)
		protected.PUT("/me/avatar", userHandler.ConfirmAvatar)

		// --- Template Authoring (coaches only) ---
		templateGroup := protected.Group("/plan-templates")
		{
			templateGroup.POST("", RoleMiddleware(domain.RoleCoach), templateHandler.CreateTemplate)
			templateGroup.GET("/:id/tree", RoleMiddleware(domain.RoleCoach), templateHandler.GetTemplateTree)
			templateGroup.PUT("/:id", RoleMiddleware(domain.RoleCoach), templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", RoleMiddleware(domain.RoleCoach), templateHandler.DeleteTemplate)

			// POST /api/v1/plan-templates/{id}/order - athletes order a plan
			templateGroup.POST("/:id/order", RoleMiddleware(domain.RoleAthlete), templateHandler.OrderTemplate)
		}

		// --- Athlete Plans ---
		protected.GET("/athlete-plans/:id", RoleMiddleware(domain.RoleAthlete), templateHandler.GetAthletePlan)

		// --- Coach Profile ---
		coachGroup := protected.Group("/coaches")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.GET("/me", coachHandler.GetMyProfile)
			coachGroup.PUT("/me", coachHandler.UpdateMyProfile)
			coachGroup.GET("/me/plan-templates", templateHandler.ListMyTemplates)
		}

		// --- Conversations ---
		conversationGroup := protected.Group("/conversations")
		{
			conversationGroup.GET("", conversationHandler.ListConversations)
			conversationGroup.GET("/:id", conversationHandler.GetConversation)
			conversationGroup.POST("/:id/messages", conversationHandler.SendMessage)
		}
	}
}
