package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplorix/jobboard-service/internal/api/http/handlers"
	"github.com/maplorix/jobboard-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Contacts       *handlers.ContactsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Put("/me", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	jobs := api.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/featured", cfg.Jobs.Featured)
	jobs.Get("/stats", cfg.AuthMiddleware.Handle, auth.RequirePermission(auth.PermAnalyticsView), cfg.Jobs.Stats)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", cfg.AuthMiddleware.Handle, cfg.Jobs.Create)
	jobs.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Jobs.Delete)

	applications := api.Group("/applications")
	applications.Post("/", cfg.Applications.Submit)
	applications.Get("/", cfg.AuthMiddleware.Handle, cfg.Applications.List)
	applications.Get("/search", cfg.AuthMiddleware.Handle, cfg.Applications.List)
	applications.Get("/stats", cfg.AuthMiddleware.Handle, cfg.Applications.Stats)
	applications.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Applications.Get)
	applications.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Applications.UpdateStatus)
	applications.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Applications.Delete)
	applications.Get("/:id/resume", cfg.AuthMiddleware.Handle, cfg.Applications.DownloadResume)
	applications.Get("/:id/emails", cfg.AuthMiddleware.Handle, cfg.Applications.Emails)

	contacts := api.Group("/contacts")
	contacts.Post("/", cfg.Contacts.Submit)
	contacts.Get("/", cfg.AuthMiddleware.Handle, cfg.Contacts.List)
	contacts.Get("/stats", cfg.AuthMiddleware.Handle, cfg.Contacts.Stats)
	contacts.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Contacts.Get)
	contacts.Patch("/:id", cfg.AuthMiddleware.Handle, cfg.Contacts.Update)
	contacts.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Contacts.Update)
	contacts.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Contacts.Delete)
	contacts.Post("/:id/notes", cfg.AuthMiddleware.Handle, cfg.Contacts.AddNote)
	contacts.Get("/:id/notes", cfg.AuthMiddleware.Handle, cfg.Contacts.Notes)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/jobs", cfg.Admin.ListJobs)
	admin.Get("/jobs/statistics", cfg.Admin.JobStatistics)
	admin.Post("/jobs/bulk", cfg.Admin.BulkJobs)
	admin.Put("/jobs/:id", cfg.Admin.UpdateJob)
	admin.Delete("/jobs/:id", cfg.Admin.DeleteJob)
	admin.Post("/jobs/:id/toggle-featured", cfg.Admin.ToggleFeatured)
	admin.Post("/jobs/:id/toggle-active", cfg.Admin.ToggleActive)
	admin.Get("/applications", cfg.Admin.ListApplications)
	admin.Post("/applications/bulk-status", cfg.Admin.BulkApplicationStatus)
	admin.Put("/applications/:id/status", cfg.Admin.UpdateApplicationStatus)
	admin.Delete("/applications/:id", cfg.Admin.DeleteApplication)
}
