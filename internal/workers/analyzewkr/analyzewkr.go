package analyzewkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/app/appconfig"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/service"
)

type WorkerDeps struct {
	fx.In
	FileRepo       *repo.File
	StatsService   *service.Stats
	PanelService   *service.Panel
	RepeatService  *service.Repeat
	CoOrderService *service.CoOrder
}

// Worker warms the analysis caches of the most recently uploaded files so
// interactive exploration does not pay the first-request computation cost.
type Worker struct {
	// count counts batches worker has completed so far
	count int

	// sep describes the separation time in-between different jobs
	sep time.Duration

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// fileLimit caps how many recent files one batch covers
	fileLimit int

	// deps
	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("worker is disabled due to config")
		return
	}
	(&Worker{
		sep:        conf.WorkerSeparation,
		interval:   conf.WorkerInterval,
		fileLimit:  conf.WorkerFileLimit,
		WorkerDeps: deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("worker batch started")

			files, err := w.FileRepo.GetRecentFiles(ctx, w.fileLimit)
			if err != nil {
				log.Error().Err(err).Msg("worker failed to list recent files")
				time.Sleep(w.interval)
				continue
			}

			for _, file := range files {
				w.warmFile(ctx, file.FileID)
			}

			log.Info().Int("count", w.count).Msg("worker batch finished")

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

func (w *Worker) warmFile(ctx context.Context, fileID string) {
	jobs := []struct {
		name string
		run  func() error
	}{
		{"StatsService", func() error {
			_, err := w.StatsService.GetSummary(ctx, &model.StatsSummaryRequest{FileID: fileID})
			return err
		}},
		{"PanelService", func() error {
			_, err := w.PanelService.GetAnalysis(ctx, fileID)
			return err
		}},
		{"RepeatService", func() error {
			_, err := w.RepeatService.GetAnalysis(ctx, fileID)
			return err
		}},
		{"CoOrderService", func() error {
			_, err := w.CoOrderService.GetAnalysis(ctx, fileID, 0)
			return err
		}},
	}

	for _, job := range jobs {
		log.Info().Str("fileId", fileID).Str("service", job.name).Msg("worker calculating")
		if err := job.run(); err != nil {
			log.Error().Err(err).Str("fileId", fileID).Str("service", job.name).Msg("worker job failed")
			continue
		}
		log.Debug().Str("fileId", fileID).Str("service", job.name).Msg("worker finished")
		time.Sleep(w.sep)
	}
}

func (w *Worker) Count() int {
	return w.count
}
