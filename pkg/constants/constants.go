// Package constants provides shared constants for the proforma application.
package constants

// DateTimeLayout is the month format used for draw schedule labels and
// construction start months in deal files.
const DateTimeLayout = "2006-01"

// SnapshotDateLayout is the date format stamped on saved deal snapshots.
const SnapshotDateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// TargetYieldPct is the minimum yield on total project cost for a deal to pass.
	TargetYieldPct = 20.0

	// TargetYieldMultiplier converts a cost into the net revenue needed to hit
	// TargetYieldPct, and back.
	TargetYieldMultiplier = 1 + TargetYieldPct/PercentageMultiplier
)

// Draw schedule constants. These are fixed heuristics; changing either one
// changes every computed interest figure.
const (
	// SCurveSteepness is divided by the construction period to get the
	// logistic steepness k.
	SCurveSteepness = 6.0

	// DrawMonthFraction is the share of a month a tranche accrues interest in
	// the month it is drawn.
	DrawMonthFraction = 0.5
)

// Deal validation bounds
const (
	// MinUnits is the smallest unit count a deal is expected to have.
	MinUnits = 2

	// MaxUnits is the largest unit count a deal is expected to have.
	MaxUnits = 8

	// MaxConstructionPeriod is the longest construction period, in months,
	// a deal may carry.
	MaxConstructionPeriod = 600
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX writes an Excel workbook per deal file
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "proforma.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "proforma.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultWorkbookFile is where xlsx output goes when no file is configured
	DefaultWorkbookFile = "proforma.xlsx"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Storage constants
const (
	// StorageBackendNone disables persistence
	StorageBackendNone = "none"

	// StorageBackendMemory keeps saved deals for the life of the process
	StorageBackendMemory = "memory"

	// StorageBackendFile keeps saved deals in a JSON file
	StorageBackendFile = "file"

	// StorageBackendPostgres keeps saved deals in a PostgreSQL table
	StorageBackendPostgres = "postgres"

	// StorageBackendRedis keeps saved deals in Redis
	StorageBackendRedis = "redis"

	// DefaultDealsFile is the JSON file used by the file backend
	DefaultDealsFile = "deals.json"

	// DefaultRedisKeyPrefix namespaces saved deals in Redis
	DefaultRedisKeyPrefix = "proforma:deals"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
