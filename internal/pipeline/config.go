package pipeline

import "time"

const (
	DefaultPoolSize        = 10
	DefaultPipelineTimeout = 10 * time.Second
)

// Config holds the orchestration knobs. Stage latencies and pricing policy
// live on the services themselves.
type Config struct {
	PoolSize        int
	PipelineTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		PoolSize:        DefaultPoolSize,
		PipelineTimeout: DefaultPipelineTimeout,
	}
}
