package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/web"
)

// RegisterRoutes sets up all the application routes. The route tree has
// three rings: public auth pages, signed-in pages, and the approved-only
// transfer pages behind the profile gate.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Static assets come from the embedded dist tree; uploads are served
	// from the storage root on disk.
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	s.E.Static("/uploads", s.Cfg.GetStorageRoot())

	// Public authentication pages. Form posts are rate limited.
	s.E.GET("/auth/login", s.authHandler.LoginGet)
	s.E.POST("/auth/login", s.authHandler.LoginPost, rateLimiter)
	s.E.GET("/auth/register", s.authHandler.RegisterGet)
	s.E.POST("/auth/register", s.authHandler.RegisterPost, rateLimiter)
	s.E.GET("/auth/logout", s.authHandler.Logout)
	s.E.POST("/auth/logout", s.authHandler.Logout)
	s.E.GET("/auth/forgot-password", s.authHandler.ForgotPasswordGet)
	s.E.POST("/auth/forgot-password", s.authHandler.ForgotPasswordPost, rateLimiter)
	s.E.GET("/auth/reset-password", s.authHandler.ResetPasswordGet)
	s.E.POST("/auth/reset-password", s.authHandler.ResetPasswordPost)

	// Signed-in pages. The auth gate runs before any handler fetches data,
	// and a second form submission is rejected while one is in flight.
	authed := s.E.Group("", middleware.Auth(s.client), middleware.Inflight())
	authed.GET("/onboarding", s.onboardingHandler.Show)
	authed.POST("/onboarding", s.onboardingHandler.Submit)
	authed.GET("/account", s.accountHandler.Show)
	authed.GET("/account/pending", s.accountHandler.Pending)
	authed.POST("/account/profile", s.accountHandler.UpdateProfile)
	authed.POST("/account/preferences", s.accountHandler.UpdatePreferences)
	authed.POST("/account/password", s.accountHandler.ChangePassword)
	authed.POST("/account/picture", s.accountHandler.UploadPicture)
	authed.POST("/account/two-factor", s.accountHandler.ToggleTwoFactor)
	authed.GET("/ws/stream", s.streamHandler.ServeWS)

	// Transfer pages require an approved profile.
	gated := authed.Group("", middleware.RequireProfile(s.profiles))
	gated.GET("/dashboard", s.dashboardHandler.Show)
	gated.GET("/dashboard/transactions", s.dashboardHandler.TransactionsFragment)
	gated.GET("/send-money", s.sendMoneyHandler.Show)
	gated.POST("/send-money", s.sendMoneyHandler.Create)
	gated.GET("/request-transfer", s.requestHandler.Show)
	gated.POST("/request-transfer", s.requestHandler.Create)
	gated.POST("/request-transfer/accept", s.requestHandler.Accept)
	gated.POST("/request-transfer/decline", s.requestHandler.Decline)
	gated.GET("/transactions", s.transactionsHandler.Show)
	gated.POST("/transactions/approve", s.transactionsHandler.Approve, middleware.RequireAdmin)
	gated.POST("/transactions/decline", s.transactionsHandler.Decline, middleware.RequireAdmin)

	// Admin review pages.
	admin := authed.Group("/admin", middleware.RequireAdmin)
	admin.GET("/users", s.adminHandler.Users)
	admin.POST("/users/review", s.adminHandler.Review)
}
