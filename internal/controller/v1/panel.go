package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/cachectrl"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
)

type PanelController struct {
	PanelService *service.Panel
}

func RegisterPanel(v1 *svr.V1, panelService *service.Panel) {
	c := &PanelController{
		PanelService: panelService,
	}

	v1.Get("/panels/:fileId", c.GetAnalysis)
	v1.Get("/panels/:fileId/patients/:patientId", c.GetPatientPanels)
	v1.Get("/panels/:fileId/top", c.GetTopCombinations)
	v1.Get("/panels/:fileId/templates", c.GetTemplates)
}

func (c *PanelController) GetAnalysis(ctx *fiber.Ctx) error {
	fileID := ctx.Params("fileId")
	analysis, err := c.PanelService.GetAnalysis(ctx.UserContext(), fileID)
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get(fileID+constant.CacheSep+"panelAnalysis", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)
	return ctx.JSON(analysis)
}

func (c *PanelController) GetPatientPanels(ctx *fiber.Ctx) error {
	panels, err := c.PanelService.GetPatientPanels(ctx.UserContext(), ctx.Params("fileId"), ctx.Params("patientId"))
	if err != nil {
		return err
	}
	return ctx.JSON(panels)
}

func (c *PanelController) GetTopCombinations(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 0)
	combinations, err := c.PanelService.GetTopCombinations(ctx.UserContext(), ctx.Params("fileId"), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(combinations)
}

func (c *PanelController) GetTemplates(ctx *fiber.Ctx) error {
	minFrequency := ctx.QueryInt("minFrequency", 0)
	templates, err := c.PanelService.GetTemplates(ctx.UserContext(), ctx.Params("fileId"), minFrequency)
	if err != nil {
		return err
	}
	return ctx.JSON(templates)
}
