package models

// BatchConfig holds the runtime settings of one multi-URL analysis.
// Values come from CLI flags layered over the config file.
type BatchConfig struct {
	URLs        []string
	WorkerCount int
	UseCache    bool
}
