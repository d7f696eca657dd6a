package appconfig

import (
	"time"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address the server would listen on for serving API requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9310"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server used for caching analysis results. See
	// https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL for more information
	// on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/2"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the IdleTimeout of the fiber app, which in turn allows
	// graceful shutdown to wait for at most such duration before forcefully closing connections.
	HTTPServerShutdownTimeout time.Duration `split_words:"true" default:"60s"`

	// PanelTemplateMinFrequency is the minimum number of occurrences a test combination
	// needs before it is reported as a panel template.
	PanelTemplateMinFrequency int `split_words:"true" default:"3"`

	// RepeatPatternMinRepeats is the minimum number of occurrences a (patient, test) group
	// needs before it is considered for regularity pattern detection.
	RepeatPatternMinRepeats int `split_words:"true" default:"3"`

	// CoOrderTopPairs is the default number of co-ordered test pairs returned.
	CoOrderTopPairs int `split_words:"true" default:"50"`

	// DedupRepeatRows controls whether duplicate (patient, test, date) rows are collapsed
	// into a single occurrence before repeat counting. The ingestion pipeline may or may
	// not already deduplicate upstream, hence a knob instead of a fixed policy.
	DedupRepeatRows bool `split_words:"true" default:"false"`

	// WorkerEnabled is whether to spin up the analysis cache warmer.
	WorkerEnabled bool `split_words:"true" default:"false"`

	// WorkerInterval describes the interval in-between batches of cache warming runs.
	WorkerInterval time.Duration `split_words:"true" default:"10m"`

	// WorkerSeparation describes the separation time in-between warming jobs within a batch.
	WorkerSeparation time.Duration `split_words:"true" default:"3s"`

	// WorkerFileLimit caps how many of the most recently uploaded files a warming batch covers.
	WorkerFileLimit int `split_words:"true" default:"10"`
}
