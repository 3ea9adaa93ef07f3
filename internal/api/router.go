package api

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *AuthHandler
	Public    *PublicHandler
	Dashboard *DashboardHandler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/session", h.Auth.Session)

	auth := app.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/register/cv-upload-url", h.Auth.CVUploadURL)
	auth.Post("/logout", h.Auth.Logout)

	app.Get("/home", h.Public.Home)
	app.Get("/formations", h.Public.Formations)
	app.Get("/evenements", h.Public.Events)
	app.Get("/mentorat", h.Public.Mentorat)
	app.Get("/blog", h.Public.Blog)
	app.Post("/donations", h.Public.Donation)

	girl := app.Group("/girl-dashboard")
	girl.Get("/", h.Dashboard.GirlDashboard)
	girl.Get("/conversations/:id/messages", h.Dashboard.Messages)
	girl.Post("/conversations/:id/messages", h.Dashboard.SendMessage)
	girl.Post("/feedback/general", h.Dashboard.GeneralFeedback)
	girl.Post("/feedback/mentorat", h.Dashboard.MentoratFeedback)

	app.Get("/expert-dashboard", h.Dashboard.ExpertDashboard)
}
