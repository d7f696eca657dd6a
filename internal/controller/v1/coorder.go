package v1

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
)

type CoOrderController struct {
	CoOrderService *service.CoOrder
}

func RegisterCoOrder(v1 *svr.V1, coOrderService *service.CoOrder) {
	c := &CoOrderController{
		CoOrderService: coOrderService,
	}

	v1.Get("/coorder/:fileId", c.GetAnalysis)
	v1.Get("/coorder/:fileId/matrix", c.GetMatrix)
	v1.Get("/coorder/:fileId/services/:serviceName", c.GetServiceCoOrder)
}

func (c *CoOrderController) GetAnalysis(ctx *fiber.Ctx) error {
	topN := ctx.QueryInt("topN", 0)
	analysis, err := c.CoOrderService.GetAnalysis(ctx.UserContext(), ctx.Params("fileId"), topN)
	if err != nil {
		return err
	}
	return ctx.JSON(analysis)
}

func (c *CoOrderController) GetMatrix(ctx *fiber.Ctx) error {
	var tests []string
	if q := ctx.Query("tests"); q != "" {
		tests = lo.FilterMap(strings.Split(q, ","), func(t string, _ int) (string, bool) {
			t = strings.TrimSpace(t)
			return t, t != ""
		})
	}

	matrix, err := c.CoOrderService.GetMatrix(ctx.UserContext(), ctx.Params("fileId"), tests)
	if err != nil {
		return err
	}
	return ctx.JSON(matrix)
}

func (c *CoOrderController) GetServiceCoOrder(ctx *fiber.Ctx) error {
	coorder, err := c.CoOrderService.GetServiceCoOrder(ctx.UserContext(), ctx.Params("fileId"), ctx.Params("serviceName"))
	if err != nil {
		return err
	}
	return ctx.JSON(coorder)
}
