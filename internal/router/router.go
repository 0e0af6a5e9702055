// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/handler"
	"github.com/idsynccam/registration-api/internal/middleware"
	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/repository"
)

// Deps bundles everything the route tree needs: configuration, handlers,
// the user repository for token cross-checks and an optional Redis client
// for the login rate limiter and the roster response cache.
type Deps struct {
	Cfg         config.Config
	Users       *repository.UserRepo
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Peserta     *handler.PesertaHandler
	Upload      *handler.UploadHandler
	Spreadsheet *handler.SpreadsheetHandler
	Redis       *redis.Client
}

// Register wires the whole route tree on the provided Echo instance.
// Protected groups run the access-token gate; the refresh endpoint runs the
// refresh-token gate instead, since the access token may already be expired
// when a client rotates.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Login endpoints are unauthenticated and rate limited per client IP
	// when Redis is configured.
	authGroup := api.Group("/auth")
	if d.Redis != nil {
		authGroup.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))
	}
	authGroup.POST("/login", d.Auth.Login)
	authGroup.POST("/login-web", d.Auth.LoginWeb)
	authGroup.POST("/logout", d.Auth.Logout,
		middleware.VerifyAccess(d.Cfg.AccessSecret, d.Users))
	authGroup.POST("/refresh-token", d.Auth.Refresh,
		middleware.VerifyRefresh(d.Cfg.RefreshSecret, d.Users))

	// Everything below requires a valid access token.
	protected := api.Group("", middleware.VerifyAccess(d.Cfg.AccessSecret, d.Users))

	protected.GET("/users", d.User.GetAllUsers)
	protected.POST("/create-user", d.User.CreateUser,
		middleware.RequireRole(model.RoleAdmin))
	protected.DELETE("/users/me", d.User.DeleteMe)
	protected.DELETE("/users/:id", d.User.DeleteUser,
		middleware.RequireRole(model.RoleAdmin))

	protected.POST("/upload", d.Upload.UploadPhoto)

	protected.GET("/peserta/:id", d.Peserta.GetPeserta)
	protected.DELETE("/peserta/delete", d.Peserta.DeleteAllPeserta)
	protected.DELETE("/peserta/month/:month", d.Peserta.DeletePesertaByMonth)
	protected.DELETE("/peserta/:id", d.Peserta.DeletePeserta)

	sheet := protected.Group("/spreadsheet")
	// Roster previews are cacheable; creation/export/delete are not.
	if d.Redis != nil {
		cacheCfg := config.LoadCacheConfig()
		sheet.GET("/peserta", d.Spreadsheet.GetPesertaData,
			middleware.NewRedisCache(cacheCfg, d.Redis))
		sheet.GET("/summary", d.Spreadsheet.GetSummary,
			middleware.NewRedisCache(cacheCfg, d.Redis))
	} else {
		sheet.GET("/peserta", d.Spreadsheet.GetPesertaData)
		sheet.GET("/summary", d.Spreadsheet.GetSummary)
	}
	sheet.POST("/create", d.Spreadsheet.CreateSpreadsheet)
	sheet.POST("/create-by-month", d.Spreadsheet.CreateSpreadsheetByMonth)
	sheet.POST("/export/excel", d.Spreadsheet.ExportExcel)
	sheet.POST("/export/pdf", d.Spreadsheet.ExportPDF)
	sheet.GET("/download/excel/:spreadsheetId", d.Spreadsheet.DownloadExcel)
	sheet.GET("/download/pdf/:spreadsheetId", d.Spreadsheet.DownloadPDF)
	sheet.DELETE("/:spreadsheetId", d.Spreadsheet.DeleteSpreadsheet)
}
