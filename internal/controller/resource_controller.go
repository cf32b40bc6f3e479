package controller

import (
	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type resourceController struct {
	resourceService service.IResourceService
}

func NewResourceController(resourceService service.IResourceService) IResourceController {
	return &resourceController{
		resourceService: resourceService,
	}
}

func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1/:id/resources")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Post("upload", c.Upload)
	h.Delete(":rid", c.Delete)
}

func (c *resourceController) List(ctx *fiber.Ctx) error {
	res, err := c.resourceService.List(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list resources", res))
}

func (c *resourceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resourceService.Create(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add resource", res))
}

func (c *resourceController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.resourceService.Upload(ctx.UserContext(), ctx.Params("id"), fileHeader.Filename, file)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload resource", res))
}

func (c *resourceController) Delete(ctx *fiber.Ctx) error {
	res, err := c.resourceService.Delete(ctx.UserContext(), ctx.Params("id"), ctx.Params("rid"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete resource", res))
}
