package cache

import (
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"gopkg.in/guregu/null.v3"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/cache"
)

type Flusher func() error

var (
	Files *cache.Singular[[]*model.File]

	StatsSummaryByFileID       *cache.Set
	ColumnStatsByFileIDAndName *cache.Set
	MissingSummaryByFileID     *cache.Set

	PanelAnalysisByFileID  *cache.Set
	PanelTemplatesByFileID *cache.Set

	RepeatAnalysisByFileID *cache.Set
	RepeatPatternsByFileID *cache.Set

	CoOrderAnalysisByFileID *cache.Set
	CoOrderMatrixByFileID   *cache.Set

	LastModifiedTime *cache.Set

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher

	// perFileSets lists every Set whose first key segment is the file id, so
	// a file deletion can drop all of its derived analyses in one pass.
	perFileSets []*cache.Set
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

// Delete flushes a cache by its registered name. A valid key is accepted for
// API symmetry with the admin surface but flushes the whole set regardless.
func Delete(name string, key null.String) error {
	if key.Valid {
		if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	} else {
		if _, ok := SingularFlusherMap[name]; ok {
			if err := SingularFlusherMap[name](); err != nil {
				return err
			}
		} else if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	}
	return nil
}

// FlushFileCaches drops every derived analysis of one file. Called whenever
// the file's rows change or the file itself is deleted.
func FlushFileCaches(fileID string) error {
	var errs []string
	for _, s := range perFileSets {
		if err := s.DeleteByPrefix(fileID); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := Files.Delete(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return &FlushError{Errors: errs}
	}
	return nil
}

type FlushError struct {
	Errors []string
}

func (e *FlushError) Error() string {
	return "cache: flush failed: " + strings.Join(e.Errors, "; ")
}

func initializeCaches(client *redis.Client) {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// file
	Files = cache.NewSingular[[]*model.File]("files")

	SingularFlusherMap["files"] = Files.Delete

	// stats
	StatsSummaryByFileID = cache.NewSet(client, "statsSummary#fileId")
	ColumnStatsByFileIDAndName = cache.NewSet(client, "columnStats#fileId|column")
	MissingSummaryByFileID = cache.NewSet(client, "missingSummary#fileId")

	SetMap["statsSummary#fileId"] = StatsSummaryByFileID.Clear
	SetMap["columnStats#fileId|column"] = ColumnStatsByFileIDAndName.Clear
	SetMap["missingSummary#fileId"] = MissingSummaryByFileID.Clear

	// panel
	PanelAnalysisByFileID = cache.NewSet(client, "panelAnalysis#fileId")
	PanelTemplatesByFileID = cache.NewSet(client, "panelTemplates#fileId")

	SetMap["panelAnalysis#fileId"] = PanelAnalysisByFileID.Clear
	SetMap["panelTemplates#fileId"] = PanelTemplatesByFileID.Clear

	// repeat
	RepeatAnalysisByFileID = cache.NewSet(client, "repeatAnalysis#fileId")
	RepeatPatternsByFileID = cache.NewSet(client, "repeatPatterns#fileId")

	SetMap["repeatAnalysis#fileId"] = RepeatAnalysisByFileID.Clear
	SetMap["repeatPatterns#fileId"] = RepeatPatternsByFileID.Clear

	// coorder
	CoOrderAnalysisByFileID = cache.NewSet(client, "coOrderAnalysis#fileId")
	CoOrderMatrixByFileID = cache.NewSet(client, "coOrderMatrix#fileId")

	SetMap["coOrderAnalysis#fileId"] = CoOrderAnalysisByFileID.Clear
	SetMap["coOrderMatrix#fileId"] = CoOrderMatrixByFileID.Clear

	// others
	LastModifiedTime = cache.NewSet(client, "lastModifiedTime#key")

	SetMap["lastModifiedTime#key"] = LastModifiedTime.Clear

	perFileSets = []*cache.Set{
		StatsSummaryByFileID,
		ColumnStatsByFileIDAndName,
		MissingSummaryByFileID,
		PanelAnalysisByFileID,
		PanelTemplatesByFileID,
		RepeatAnalysisByFileID,
		RepeatPatternsByFileID,
		CoOrderAnalysisByFileID,
		CoOrderMatrixByFileID,
		LastModifiedTime,
	}
}
