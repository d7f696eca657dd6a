package meta

import "github.com/gofiber/fiber/v2"

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"@link":   "https://github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer",
			"message": "Welcome to LabLens API v1",
		})
	})
}
