package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "JobJumper-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"JobJumper-backend/internal/auth"
	"JobJumper-backend/internal/controller/chat"
	"JobJumper-backend/internal/controller/content"
	"JobJumper-backend/internal/controller/job"
	"JobJumper-backend/internal/controller/profile"
	"JobJumper-backend/internal/controller/report"
	"JobJumper-backend/internal/controller/workspace"
	"JobJumper-backend/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Tracker, s.Log)
	logout := auth.NewLogoutController(s.Blacklist, s.Tracker)
	jobCtrl := job.NewJobController(s.Tracker)
	profileCtrl := profile.NewProfileController(s.Tracker, s.AI)
	chatCtrl := chat.NewChatController(s.Tracker, s.AI)
	reportCtrl := report.NewReportController(s.Tracker, s.AI)
	contentCtrl := content.NewContentController(s.Tracker, s.AI)
	workspaceCtrl := workspace.NewWorkspaceController(s.Tracker)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("register", lAuth.RegisterHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("/auth/logout", logout.LogoutHandler)

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobCtrl.ListHandler)
				jobRoute.GET("/stats", jobCtrl.StatsHandler)
				jobRoute.POST("", jobCtrl.CreateHandler)
				jobRoute.PATCH("/:id", jobCtrl.UpdateHandler)
				jobRoute.DELETE("/:id", jobCtrl.DeleteHandler)
			}

			profileRoute := needAuth.Group("/profile")
			{
				profileRoute.GET("", profileCtrl.GetHandler)
				profileRoute.PUT("", profileCtrl.ReplaceHandler)
				profileRoute.GET("/theme", profileCtrl.GetThemeHandler)
				profileRoute.PUT("/theme", profileCtrl.SetThemeHandler)

				resumeRoute := profileRoute.Group("/resume")
				resumeRoute.Use(middleware.EnvRateLimitMiddleware())
				{
					resumeRoute.POST("/parse", profileCtrl.ParseResumeHandler)
					resumeRoute.POST("/enhance", profileCtrl.EnhanceResumeHandler)
					resumeRoute.POST("/tailor/:id", profileCtrl.TailorResumeHandler)
					resumeRoute.POST("/score", profileCtrl.ScoreResumeHandler)
				}

				profileRoute.POST("/avatar",
					middleware.EnvRateLimitMiddleware(),
					middleware.SizeLimit(10<<20),
					profileCtrl.AvatarHandler)
			}

			chatRoute := needAuth.Group("/chat")
			{
				chatRoute.GET("", chatCtrl.GetHandler)
				chatRoute.POST("", middleware.EnvRateLimitMiddleware(), chatCtrl.MessageHandler)
				chatRoute.DELETE("", chatCtrl.ClearHandler)
			}

			reportRoute := needAuth.Group("/reports")
			{
				reportRoute.POST("/research", middleware.EnvRateLimitMiddleware(), reportCtrl.GenerateResearchHandler)
				reportRoute.GET("/research", reportCtrl.ListResearchHandler)
				reportRoute.DELETE("/research/:id", reportCtrl.DeleteResearchHandler)
				reportRoute.POST("/prep", middleware.EnvRateLimitMiddleware(), reportCtrl.GeneratePrepHandler)
				reportRoute.GET("/prep", reportCtrl.ListPrepHandler)
				reportRoute.DELETE("/prep/:id", reportCtrl.DeletePrepHandler)
			}

			contentRoute := needAuth.Group("/content")
			contentRoute.Use(middleware.EnvRateLimitMiddleware())
			{
				contentRoute.POST("/cover-letter/:id", contentCtrl.CoverLetterHandler)
				contentRoute.POST("/interview-guide/:id", contentCtrl.InterviewGuideHandler)
				contentRoute.POST("/negotiation-strategy/:id", contentCtrl.NegotiationStrategyHandler)
				contentRoute.POST("/job-match/:id", contentCtrl.JobMatchHandler)
				contentRoute.POST("/document/:id", contentCtrl.DocumentHandler)
			}

			needAuth.GET("/export", workspaceCtrl.ExportHandler)
			needAuth.POST("/demo", workspaceCtrl.DemoSeedHandler)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
