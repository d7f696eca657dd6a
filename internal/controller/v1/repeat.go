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

type RepeatController struct {
	RepeatService *service.Repeat
}

func RegisterRepeat(v1 *svr.V1, repeatService *service.Repeat) {
	c := &RepeatController{
		RepeatService: repeatService,
	}

	v1.Get("/repeats/:fileId", c.GetAnalysis)
	v1.Get("/repeats/:fileId/patterns", c.GetPatterns)
	v1.Get("/repeats/:fileId/tests/:testName", c.GetTestHistory)
	v1.Get("/repeats/:fileId/patients/:patientId", c.GetPatientRepeats)
}

func (c *RepeatController) GetAnalysis(ctx *fiber.Ctx) error {
	fileID := ctx.Params("fileId")
	analysis, err := c.RepeatService.GetAnalysis(ctx.UserContext(), fileID)
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get(fileID+constant.CacheSep+"repeatAnalysis", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)
	return ctx.JSON(analysis)
}

func (c *RepeatController) GetPatterns(ctx *fiber.Ctx) error {
	minRepeats := ctx.QueryInt("minRepeats", 0)
	patterns, err := c.RepeatService.GetPatterns(ctx.UserContext(), ctx.Params("fileId"), minRepeats)
	if err != nil {
		return err
	}
	return ctx.JSON(patterns)
}

func (c *RepeatController) GetTestHistory(ctx *fiber.Ctx) error {
	history, err := c.RepeatService.GetTestHistory(ctx.UserContext(), ctx.Params("fileId"), ctx.Params("testName"))
	if err != nil {
		return err
	}
	return ctx.JSON(history)
}

func (c *RepeatController) GetPatientRepeats(ctx *fiber.Ctx) error {
	repeats, err := c.RepeatService.GetPatientRepeats(ctx.UserContext(), ctx.Params("fileId"), ctx.Params("patientId"))
	if err != nil {
		return err
	}
	return ctx.JSON(repeats)
}
