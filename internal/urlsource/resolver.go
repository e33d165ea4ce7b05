package urlsource

import (
	"strings"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

// Resolver turns a URL source file or positional arguments into the ordered
// list of URLs to audit.
type Resolver struct {
	fileManager      *common.FileManager
	logger           zerolog.Logger
	maxFileSize      int64
	sitemapExtension string
}

// NewResolver creates a resolver honouring the input configuration
func NewResolver(cfg config.InputConfig, logger zerolog.Logger) *Resolver {
	ext := cfg.SitemapExtension
	if ext == "" {
		ext = config.DefaultInputSitemapExtension
	}
	return &Resolver{
		fileManager:      common.NewFileManager(logger),
		logger:           logger.With().Str("component", "URLSourceResolver").Logger(),
		maxFileSize:      cfg.MaxFileSizeBytes(),
		sitemapExtension: ext,
	}
}

// Resolve returns the URLs from filePath when it is set, otherwise args.
// A source that cannot be read or parsed is logged and treated as empty;
// an empty result yields models.ErrNoURLsResolved.
func (r *Resolver) Resolve(filePath string, args []string) ([]string, error) {
	var urls []string

	if filePath != "" {
		var err error
		if r.IsSitemap(filePath) {
			urls, err = r.ReadSitemap(filePath)
		} else {
			urls, err = r.ReadTextFile(filePath)
		}
		if err != nil {
			r.logger.Error().Err(err).Str("source", filePath).Msg("Could not read URL source")
			urls = nil
		}
	} else {
		urls = append(urls, args...)
	}

	if len(urls) == 0 {
		return nil, models.ErrNoURLsResolved
	}

	r.logger.Info().Int("count", len(urls)).Str("source", sourceName(filePath)).Msg("URLs resolved")
	return urls, nil
}

// IsSitemap reports whether path is treated as an XML sitemap. The suffix
// comparison is case-sensitive.
func (r *Resolver) IsSitemap(path string) bool {
	return strings.HasSuffix(path, r.sitemapExtension)
}

// ReadSitemap reads path and returns its <loc> values in document order.
func (r *Resolver) ReadSitemap(path string) ([]string, error) {
	data, err := r.read(path)
	if err != nil {
		return nil, err
	}
	urls, skipped, err := ParseSitemap(data)
	if err != nil {
		return nil, &models.URLSourceError{Source: path, Err: err}
	}
	if skipped > 0 {
		r.logger.Warn().Str("source", path).Int("skipped", skipped).Msg("Sitemap entries without <loc> ignored")
	}
	return urls, nil
}

// ReadTextFile reads path and returns one entry per line.
func (r *Resolver) ReadTextFile(path string) ([]string, error) {
	data, err := r.read(path)
	if err != nil {
		return nil, err
	}
	return ParseLines(data), nil
}

func (r *Resolver) read(path string) ([]byte, error) {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = r.maxFileSize

	data, err := r.fileManager.ReadFile(path, opts)
	if err != nil {
		return nil, &models.URLSourceError{Source: path, Err: err}
	}
	return data, nil
}

func sourceName(filePath string) string {
	if filePath == "" {
		return "arguments"
	}
	return filePath
}
