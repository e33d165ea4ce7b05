package config

// InputConfig controls how URL source files are read
type InputConfig struct {
	MaxFileSizeMB    int    `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"min=1"`
	SitemapExtension string `json:"sitemap_extension,omitempty" yaml:"sitemap_extension,omitempty" validate:"required,startswith=."`
}

// NewDefaultInputConfig creates default input configuration
func NewDefaultInputConfig() InputConfig {
	return InputConfig{
		MaxFileSizeMB:    DefaultInputMaxFileSizeMB,
		SitemapExtension: DefaultInputSitemapExtension,
	}
}

// MaxFileSizeBytes returns the size limit in bytes
func (c InputConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
