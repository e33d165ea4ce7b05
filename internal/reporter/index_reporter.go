package reporter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/aleister1102/lhbatch/internal/common"
	"github.com/aleister1102/lhbatch/internal/config"
	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html.tmpl
var defaultTemplate embed.FS

const defaultIndexTemplateName = "index.html.tmpl"

// IndexRow is one audited URL of one variant
type IndexRow struct {
	URL      string
	Scores   []float64
	JSONLink string
	HTMLLink string
}

// VariantSection groups the rows of one variant
type VariantSection struct {
	Variant     string
	SummaryFile string
	Rows        []IndexRow
}

// FailureRow is one failed pass
type FailureRow struct {
	URL     string
	Variant string
	Error   string
}

// IndexData is the template model of the run overview page
type IndexData struct {
	Title        string
	RunID        string
	RunDirectory string
	Status       string
	StartedAt    time.Time
	FinishedAt   time.Time
	Duration     string
	TotalURLs    int
	Categories   []string
	Sections     []VariantSection
	Failures     []FailureRow
	GeneratedAt  time.Time
}

// IndexReporter renders index.html into a run directory
type IndexReporter struct {
	cfg         config.ReporterConfig
	logger      zerolog.Logger
	template    *template.Template
	fileManager *common.FileManager
}

// NewIndexReporter parses the embedded template
func NewIndexReporter(cfg config.ReporterConfig, appLogger zerolog.Logger) (*IndexReporter, error) {
	logger := appLogger.With().Str("component", "IndexReporter").Logger()

	tmpl, err := template.New(defaultIndexTemplateName).
		Funcs(GetCommonTemplateFunctions()).
		ParseFS(defaultTemplate, "templates/"+defaultIndexTemplateName)
	if err != nil {
		return nil, common.WrapError(err, "failed to parse embedded index template")
	}

	if cfg.IndexFile == "" {
		cfg.IndexFile = config.DefaultReporterIndexFile
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = config.DefaultReporterReportTitle
	}

	return &IndexReporter{
		cfg:         cfg,
		logger:      logger,
		template:    tmpl,
		fileManager: common.NewFileManager(logger),
	}, nil
}

// BuildIndexData assembles the page model from the run summary and every pass
// outcome. Outcomes keep their order; artifact links are relative to the run directory.
func (r *IndexReporter) BuildIndexData(summary *models.RunSummary, outcomes []models.AuditOutcome, summaryFiles map[models.Variant]string) IndexData {
	data := IndexData{
		Title:        r.cfg.ReportTitle,
		RunID:        summary.RunID,
		RunDirectory: summary.RunDirectory,
		Status:       string(summary.Status),
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
		Duration:     summary.Duration().Round(time.Second).String(),
		TotalURLs:    summary.TotalURLs,
		Categories:   models.SummaryCategories,
		GeneratedAt:  time.Now(),
	}

	for _, variant := range models.AllVariants() {
		section := VariantSection{Variant: variant.String(), SummaryFile: relativeLink(summaryFiles[variant])}
		for _, o := range outcomes {
			if o.Variant != variant || !o.Succeeded() {
				continue
			}
			section.Rows = append(section.Rows, IndexRow{
				URL:      o.Record.URL,
				Scores:   o.Record.Scores(),
				JSONLink: relativeLink(o.JSONPath),
				HTMLLink: relativeLink(o.HTMLPath),
			})
		}
		data.Sections = append(data.Sections, section)
	}

	for _, o := range outcomes {
		if o.Succeeded() {
			continue
		}
		msg := "unknown error"
		if o.Err != nil {
			msg = o.Err.Error()
		}
		data.Failures = append(data.Failures, FailureRow{URL: o.URL, Variant: o.Variant.String(), Error: msg})
	}
	return data
}

// Generate renders data and writes it into runDir, returning the file path.
func (r *IndexReporter) Generate(data IndexData, runDir string) (string, error) {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render index page: %w", err)
	}

	path := filepath.Join(runDir, r.cfg.IndexFile)
	if err := r.fileManager.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	r.logger.Info().Str("path", path).Msg("Run overview written")
	return path, nil
}

func relativeLink(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
