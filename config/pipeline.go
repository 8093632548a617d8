package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	pipelineOnce   sync.Once
	pipelineConfig *PipelineConfig
)

// PipelineConfig holds the tunables of the extraction pipeline and its
// collaborators, loaded from an optional YAML file.
type PipelineConfig struct {
	MaxFileSize       int64    `yaml:"maxFileSize"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
	PreviewRows       int      `yaml:"previewRows"`
	ContextCharLimit  int      `yaml:"contextCharLimit"`
	PreviewCharLimit  int      `yaml:"previewCharLimit"`
}

func defaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		MaxFileSize: 50 * 1024 * 1024, // 50MB
		AllowedExtensions: []string{
			".pdf", ".doc", ".docx", ".txt", ".csv", ".xlsx", ".xls",
			".pptx", ".json", ".png", ".jpg", ".jpeg", ".gif", ".bmp",
			".tiff", ".webp",
		},
		PreviewRows:      10,
		ContextCharLimit: 1000,
		PreviewCharLimit: 300,
	}
}

// GetPipelineConfig reads PIPELINE_CONFIG (default config.yaml) once. A
// missing or malformed file yields the defaults.
func GetPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		loadEnv()
		pipelineConfig = defaultPipelineConfig()

		path := getenv("PIPELINE_CONFIG", "config.yaml")
		raw, err := os.ReadFile(path)
		if err != nil {
			return
		}
		var fileCfg PipelineConfig
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return
		}
		if fileCfg.MaxFileSize > 0 {
			pipelineConfig.MaxFileSize = fileCfg.MaxFileSize
		}
		if len(fileCfg.AllowedExtensions) > 0 {
			pipelineConfig.AllowedExtensions = fileCfg.AllowedExtensions
		}
		if fileCfg.PreviewRows > 0 {
			pipelineConfig.PreviewRows = fileCfg.PreviewRows
		}
		if fileCfg.ContextCharLimit > 0 {
			pipelineConfig.ContextCharLimit = fileCfg.ContextCharLimit
		}
		if fileCfg.PreviewCharLimit > 0 {
			pipelineConfig.PreviewCharLimit = fileCfg.PreviewCharLimit
		}
	})
	return pipelineConfig
}
