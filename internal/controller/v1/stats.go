package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util/rekuest"
)

type StatsController struct {
	StatsService *service.Stats
}

func RegisterStats(v1 *svr.V1, statsService *service.Stats) {
	c := &StatsController{
		StatsService: statsService,
	}

	v1.Post("/stats/summary", c.GetSummary)
	v1.Get("/stats/:fileId/columns/:columnName", c.GetColumnStats)
	v1.Get("/stats/:fileId/missing", c.GetMissingSummary)
}

func (c *StatsController) GetSummary(ctx *fiber.Ctx) error {
	var request model.StatsSummaryRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	summary, err := c.StatsService.GetSummary(ctx.UserContext(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(summary)
}

func (c *StatsController) GetColumnStats(ctx *fiber.Ctx) error {
	stats, err := c.StatsService.GetColumnStats(ctx.UserContext(), ctx.Params("fileId"), ctx.Params("columnName"))
	if err != nil {
		return err
	}
	return ctx.JSON(stats)
}

func (c *StatsController) GetMissingSummary(ctx *fiber.Ctx) error {
	missing, err := c.StatsService.GetMissingSummary(ctx.UserContext(), ctx.Params("fileId"))
	if err != nil {
		return err
	}
	return ctx.JSON(missing)
}
