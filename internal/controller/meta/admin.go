package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/server/svr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util/rekuest"
)

type AdminController struct{}

func RegisterAdmin(admin *svr.Admin) {
	c := &AdminController{}

	admin.Post("/purge", c.PurgeCache)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request model.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return cache.Delete(request.Name, request.Key)
}
