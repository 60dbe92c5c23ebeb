package config

const (
	// DefaultConfigFile is read when present and no --config flag is given
	DefaultConfigFile = "logsift.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
	// DefaultMode is the parser generation used when none is configured
	DefaultMode = "tolerant"
	// DefaultWorkers is the default number of classification workers
	DefaultWorkers = 1
	// DefaultLongRunningThreshold is the long-running cutoff in seconds
	DefaultLongRunningThreshold = 10.0
	// DefaultMaxLineLength is the longest accepted input line in bytes
	DefaultMaxLineLength = 1024 * 1024
	// DefaultOutputJSONFile is the default report file name
	DefaultOutputJSONFile = "logsift-report.json"
	// DefaultOutputJSONDir is the default report directory
	DefaultOutputJSONDir = "storage"
	// DefaultLogLevel is the diagnostic log level
	DefaultLogLevel = "warn"

	// DefaultDBHost is the default MySQL host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default MySQL port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default MySQL user
	DefaultDBUser = "root"
	// DefaultDBName is the default MySQL database
	DefaultDBName = "logsift"
)

// DefaultLogSuffixes are the file suffixes treated as log files when scanning directories
var DefaultLogSuffixes = []string{".log", ".txt", ".out"}

// DefaultPathsToIgnore are the default directories to skip when scanning for logs
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	".git",
	"__pycache__",
	".venv",
}
