package schema

// Custom string types for type safety.
type (
	// Status represents the classification assigned to a watch log.
	Status string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All classification statuses supported.
const (
	InsufficientDataStatus Status = "insufficient_data"
	OscillatingStatus      Status = "oscillating"
	ConvergingStatus       Status = "converging"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Process exit codes for the analyze command. The legacy script derived its
// exit code from a string comparison against "converging", which made an
// insufficient-data run exit as if an oscillation had been found. The codes
// below are the documented replacement contract.
const (
	ExitConverging       = 0
	ExitOscillating      = 1
	ExitInsufficientData = 2
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ExitCode maps a classification status to the analyze process exit code.
func (s Status) ExitCode() int {
	switch s {
	case OscillatingStatus:
		return ExitOscillating
	case InsufficientDataStatus:
		return ExitInsufficientData
	default:
		return ExitConverging
	}
}
