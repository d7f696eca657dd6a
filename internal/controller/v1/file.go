package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util/rekuest"
)

type FileController struct {
	FileService *service.File
}

func RegisterFile(v1 *svr.V1, fileService *service.File) {
	c := &FileController{
		FileService: fileService,
	}

	v1.Post("/files", c.Ingest)
	v1.Get("/files", c.List)
	v1.Get("/files/:fileId", c.GetByID)
	v1.Get("/files/:fileId/data", c.GetData)
	v1.Delete("/files/:fileId", c.Delete)
}

func (c *FileController) Ingest(ctx *fiber.Ctx) error {
	var request model.FileIngestRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	file, err := c.FileService.Ingest(ctx.UserContext(), &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(file)
}

func (c *FileController) List(ctx *fiber.Ctx) error {
	files, err := c.FileService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(files)
}

func (c *FileController) GetByID(ctx *fiber.Ctx) error {
	file, err := c.FileService.GetByID(ctx.UserContext(), ctx.Params("fileId"))
	if err != nil {
		return err
	}
	return ctx.JSON(file)
}

func (c *FileController) GetData(ctx *fiber.Ctx) error {
	rows, err := c.FileService.GetData(ctx.UserContext(), ctx.Params("fileId"))
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (c *FileController) Delete(ctx *fiber.Ctx) error {
	if err := c.FileService.Delete(ctx.UserContext(), ctx.Params("fileId")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
