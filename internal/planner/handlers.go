package planner

import (
	"errors"

	"backend-trafella/internal/itinerary"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var body struct {
			Destination string              `json:"destination"`
			Days        []itinerary.DayPlan `json:"days"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(body.Days) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "days required")
		}
		sess, err := svc.Create(c.UserContext(), body.Destination, body.Days)
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		sess, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.JSON(sess)
	})

	r.Post("/:id/days/:day/reorder", func(c *fiber.Ctx) error {
		day, err := c.ParamsInt("day")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		var body struct {
			From *int `json:"from"`
			To   *int `json:"to"`
		}
		if err := c.BodyParser(&body); err != nil || body.From == nil || body.To == nil {
			return fiber.NewError(fiber.StatusBadRequest, "from and to required")
		}
		sess, err := svc.Reorder(c.UserContext(), c.Params("id"), day, *body.From, *body.To)
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.JSON(sess)
	})

	r.Patch("/:id/days/:day/activities/:activityId", func(c *fiber.Ctx) error {
		day, err := c.ParamsInt("day")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		var patch TimePatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if patch.StartTime == nil && patch.EndTime == nil {
			return fiber.NewError(fiber.StatusBadRequest, "startTime or endTime required")
		}
		sess, err := svc.UpdateTime(c.UserContext(), c.Params("id"), day, c.Params("activityId"), patch)
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.JSON(sess)
	})

	r.Get("/:id/days/:day/validation", func(c *fiber.Ctx) error {
		day, err := c.ParamsInt("day")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		res, err := svc.Validate(c.UserContext(), c.Params("id"), day)
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/:id/reset", func(c *fiber.Ctx) error {
		sess, err := svc.Reset(c.UserContext(), c.Params("id"))
		if err != nil {
			return toHTTPError(c, err)
		}
		return c.JSON(sess)
	})
}

func toHTTPError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    "VALIDATION_FAILED",
			"message": "Activity times are invalid",
			"details": verr.Messages,
		})
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Unexpected error")
	}
}
