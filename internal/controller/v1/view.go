package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util/rekuest"
)

type ViewController struct {
	ViewService *service.View
}

func RegisterView(v1 *svr.V1, viewService *service.View) {
	c := &ViewController{
		ViewService: viewService,
	}

	v1.Post("/views", c.Create)
	v1.Get("/views", c.List)
	v1.Get("/views/:viewId", c.GetByID)
	v1.Put("/views/:viewId", c.Update)
	v1.Delete("/views/:viewId", c.Delete)
}

func (c *ViewController) Create(ctx *fiber.Ctx) error {
	var request model.ViewCreateRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	view, err := c.ViewService.Create(ctx.UserContext(), &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(view)
}

func (c *ViewController) List(ctx *fiber.Ctx) error {
	views, err := c.ViewService.List(ctx.UserContext(), ctx.Query("fileId"))
	if err != nil {
		return err
	}
	return ctx.JSON(views)
}

func (c *ViewController) GetByID(ctx *fiber.Ctx) error {
	view, err := c.ViewService.GetByID(ctx.UserContext(), ctx.Params("viewId"))
	if err != nil {
		return err
	}
	return ctx.JSON(view)
}

func (c *ViewController) Update(ctx *fiber.Ctx) error {
	var request model.ViewUpdateRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	view, err := c.ViewService.Update(ctx.UserContext(), ctx.Params("viewId"), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(view)
}

func (c *ViewController) Delete(ctx *fiber.Ctx) error {
	if err := c.ViewService.Delete(ctx.UserContext(), ctx.Params("viewId")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
