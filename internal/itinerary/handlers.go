package itinerary

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		resp, err := generate(c, svc)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(resp)
	})

	r.Post("/geojson", func(c *fiber.Ctx) error {
		resp, err := generate(c, svc)
		if err != nil {
			return writeError(c, err)
		}
		body, err := json.Marshal(FeatureCollection(resp))
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(body)
	})
}

func generate(c *fiber.Ctx, svc *Service) (Response, error) {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return Response{}, invalidInput("invalid JSON body")
	}
	return svc.Generate(c.UserContext(), req)
}

func writeError(c *fiber.Ctx, err error) error {
	e := AsError(err)
	return c.Status(e.Status).JSON(e)
}
