package outbreaksim

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// DataLogger is the general definition of a logger that records one
// seed's output tables: population, households, infection records,
// and progression records (spec §6: "Population output", "Households
// output", "Event log output"), whether it writes CSV text or an
// SQLite database. Adapted from the teacher's genotype/host-centric
// DataLogger interface in the same file, generalised from
// genotype/transmission/mutation channels to this domain's four output
// tables.
type DataLogger interface {
	// SetBasePath sets the base path of the logger for seed index i.
	SetBasePath(path string, i int)
	// Init prepares the logger's output (file headers or tables).
	Init() error
	// WritePopulation records final person attributes, infection
	// status, and expected severity (spec §6 Population output).
	WritePopulation(people []*Person, status map[int]InfectionStatus, severity map[int]Severity) error
	// WriteHouseholds records household composition and house-master
	// assignment (spec §6 Households output).
	WriteHouseholds(households []*Household) error
	// WriteInfections records the transmission log (spec §6 Event
	// log output).
	WriteInfections(records []InfectionRecord) error
	// WriteProgressions records the per-person disease timeline
	// (spec §6 Event log output).
	WriteProgressions(records map[int]*ProgressionRecord) error
}

// AppendToFile creates a new file on the given path if it does not
// exist, or appends to the end of the existing file if the file
// exists. Grounded on the teacher's own AppendToFile helper.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

// NewFile creates path and writes b, failing if path already exists.
// Grounded on the teacher's own NewFile helper.
func NewFile(path string, b []byte) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

// OpenSQLiteDB establishes a database connection, appending an
// optional connection-string suffix. Grounded on the teacher's own
// OpenSQLiteDB helper.
func OpenSQLiteDB(path string, connectionString string) (*sql.DB, error) {
	dsn := "file:%s%s"
	db, err := sql.Open("sqlite3", fmt.Sprintf(dsn, path, connectionString))
	if err != nil {
		return nil, err
	}
	return db, nil
}
