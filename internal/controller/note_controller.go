package controller

import (
	"fmt"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Synthesize(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1/:id/notes")
	h.Post("synthesize", c.Synthesize)
	h.Get("", c.Show)
	h.Get("export", c.Export)
}

func (c *noteController) Synthesize(ctx *fiber.Ctx) error {
	var req dto.SynthesizeNotesRequest
	// an empty body means "from the library only"
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.noteService.Synthesize(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success synthesize notes", res))
}

// Show returns the note document, or its markdown with ?format=markdown.
func (c *noteController) Show(ctx *fiber.Ctx) error {
	if ctx.Query("format") == "markdown" {
		res, err := c.noteService.Markdown(ctx.UserContext(), ctx.Params("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success render notes", res))
	}

	res, err := c.noteService.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show notes", res))
}

func (c *noteController) Export(ctx *fiber.Ctx) error {
	data, fileName, err := c.noteService.ExportPDF(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Send(data)
}
