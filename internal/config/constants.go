package config

const (
	// Audit Defaults
	DefaultAuditToolPath      = "lighthouse"
	DefaultAuditInstallHint   = "npm i --location=global lighthouse"
	DefaultAuditChromeFlags   = "--headless --disable-gpu"
	DefaultAuditDesktopPreset = "desktop"
	DefaultAuditTimeoutSecs   = 300

	// Input Defaults
	DefaultInputMaxFileSizeMB    = 10
	DefaultInputSitemapExtension = ".xml"

	// Run Directory Defaults
	DefaultRunOutputDir = "."
	DefaultRunDirPrefix = "lighthouse-audit"
	DefaultRunDirFormat = DirFormatMinute

	DefaultRunProgressIntervalSecs = 10

	// Summary Defaults
	DefaultSummaryMode        = SummaryModeBatch
	DefaultSummaryMobileFile  = "lighthouse-scores.csv"
	DefaultSummaryDesktopFile = "lighthouse-scores-desktop.csv"

	// Reporter Defaults
	DefaultReporterIndexFile   = "index.html"
	DefaultReporterReportTitle = "Lighthouse Audit Summary"

	// Storage Defaults
	DefaultStorageHistoryDBName    = "lhbatch_history.db"
	DefaultStorageCompressionCodec = "zstd"

	// Resource Defaults
	DefaultResourceSystemMemThreshold = 0.9
	DefaultResourcePollIntervalSecs   = 5
	DefaultResourceMaxWaitSecs        = 120

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultRunLogFile    = "lhbatch.log"
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// Summary modes
const (
	SummaryModeBatch  = "batch"
	SummaryModeStream = "stream"
)

// Run directory timestamp formats
const (
	DirFormatMinute = "minute"
	DirFormatSecond = "second"
)
