package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) registerReports(app *fiber.App) {
	app.Post("/reports/email", func(c *fiber.Ctx) error {
		if err := s.weekly.Run(c.Context()); err != nil {
			return s.fail(c, err)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Weekly email sent successfully."})
	})
}
