package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/FrancoGW/fit-app/internal/account"
	"github.com/FrancoGW/fit-app/internal/attendance"
	"github.com/FrancoGW/fit-app/internal/auth"
	"github.com/FrancoGW/fit-app/internal/config"
	"github.com/FrancoGW/fit-app/internal/license"
	"github.com/FrancoGW/fit-app/internal/member"
	"github.com/FrancoGW/fit-app/internal/notify"
	"github.com/FrancoGW/fit-app/internal/plan"
	"github.com/FrancoGW/fit-app/internal/report"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config

	// Accounts is exposed so main can seed the default admin through the
	// same service the handlers use.
	Accounts account.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())

	accountRepo := account.NewRepository(db)
	licenseRepo := license.NewRepository(db)
	planRepo := plan.NewRepository(db)
	memberRepo := member.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)

	accountService := account.NewService(accountRepo, licenseRepo, notifier, cfg.JWTSecret)
	licenseService := license.NewService(licenseRepo, notifier)
	planService := plan.NewService(planRepo)
	memberService := member.NewService(memberRepo)
	attendanceService := attendance.NewService(attendanceRepo, memberService)

	accountHandler := account.NewHandler(accountService)
	licenseHandler := license.NewHandler(licenseService)
	planHandler := plan.NewHandler(planService)
	memberHandler := member.NewHandler(memberService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	reportHandler := report.NewHandler(accountRepo, licenseRepo, memberRepo, attendanceRepo)

	public := router.Group("/auth")
	{
		public.POST("/login", RateLimitMiddleware(5, 10), accountHandler.Login)
		public.POST("/refresh", accountHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", accountHandler.GetMe)
		protected.POST("/me/password", accountHandler.ChangePassword)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireKind(auth.KindAdmin))
	{
		admin.GET("/gyms", accountHandler.ListGyms)
		admin.POST("/gyms", accountHandler.CreateGym)
		admin.PUT("/gyms/:gymID", accountHandler.UpdateGym)
		admin.POST("/gyms/:gymID/toggle", accountHandler.ToggleActive)
		admin.GET("/gyms/:gymID/license", licenseHandler.ActiveInfo)

		admin.GET("/licenses", licenseHandler.List)
		admin.POST("/licenses", licenseHandler.Grant)
		admin.POST("/licenses/:licenseID/revoke", licenseHandler.Revoke)
		admin.GET("/licenses/gyms", licenseHandler.ListActiveGyms)

		admin.GET("/stats", licenseHandler.GetStats)

		admin.GET("/reports/gyms", reportHandler.ExportGyms)
		admin.GET("/reports/licenses", reportHandler.ExportLicenses)
	}

	gym := router.Group("/gym")
	gym.Use(authMiddleware, auth.RequireKind(auth.KindGym))
	{
		gym.GET("/plans", planHandler.List)
		gym.POST("/plans", planHandler.Create)
		gym.PUT("/plans/:planID", planHandler.Update)
		gym.DELETE("/plans/:planID", planHandler.Delete)

		gym.GET("/members", memberHandler.List)
		gym.POST("/members", memberHandler.Create)
		gym.PUT("/members/:memberID", memberHandler.Update)
		gym.DELETE("/members/:memberID", memberHandler.Delete)
		gym.GET("/members/stats", memberHandler.GetStats)

		gym.POST("/checkin", attendanceHandler.CheckIn)
		gym.GET("/attendance", attendanceHandler.MonthlyList)
		gym.GET("/attendance/count", attendanceHandler.MonthlyCount)

		gym.GET("/reports/members", reportHandler.ExportMembers)
		gym.GET("/reports/attendance", reportHandler.ExportAttendance)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:   router,
		db:       db,
		config:   cfg,
		Accounts: accountService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
