package controller

import (
	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
	TogglePriority(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{
		preferenceService: preferenceService,
	}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1/:id/preferences")
	h.Get("", c.Show)
	h.Put("", c.Replace)
	h.Post("priorities/toggle", c.TogglePriority)
}

func (c *preferenceController) Show(ctx *fiber.Ctx) error {
	res, err := c.preferenceService.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show preferences", res))
}

func (c *preferenceController) Replace(ctx *fiber.Ctx) error {
	var req dto.PreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.preferenceService.Replace(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update preferences", res))
}

func (c *preferenceController) TogglePriority(ctx *fiber.Ctx) error {
	var req dto.TogglePriorityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.preferenceService.TogglePriority(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle priority", res))
}
