package controller

import (
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
}

type activityController struct {
	activityService service.IActivityService
}

func NewActivityController(activityService service.IActivityService) IActivityController {
	return &activityController{
		activityService: activityService,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/activity/v1")
	h.Get("", c.Summary)
}

func (c *activityController) Summary(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show activity", c.activityService.Summary(ctx.UserContext())))
}
