package outbreaksim

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// SQLiteLogger is a DataLogger that writes simulation output to
// SQLite databases, one table set per seed index. Grounded on the
// teacher's own SQLiteLogger (same per-table newTable helper and
// database/sql + go-sqlite3 idiom), generalised from genotype/host
// tables to this domain's population/household/infection/progression
// tables.
type SQLiteLogger struct {
	populationPath  string
	householdPath   string
	infectionPath   string
	progressionPath string
	instanceID      int
}

// NewSQLiteLogger creates a new logger that writes data into SQLite
// databases.
func NewSQLiteLogger(basepath string, i int) *SQLiteLogger {
	l := new(SQLiteLogger)
	l.SetBasePath(basepath, i)
	return l
}

func (l *SQLiteLogger) SetBasePath(basepath string, i int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", i)
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.populationPath = trimmed + fmt.Sprintf(".%s.db", "population")
	l.householdPath = trimmed + fmt.Sprintf(".%s.db", "households")
	l.infectionPath = trimmed + fmt.Sprintf(".%s.db", "infections")
	l.progressionPath = trimmed + fmt.Sprintf(".%s.db", "progressions")
	l.instanceID = i
}

// Init creates a new table in each database for this seed index.
func (l *SQLiteLogger) Init() error {
	newTable := func(path, tableName, cols string) error {
		db, err := OpenSQLiteDB(path, "")
		if err != nil {
			return err
		}
		defer db.Close()
		fullTableName := fmt.Sprintf("%s%03d", tableName, l.instanceID)
		sqlStmt := fmt.Sprintf("create table %s %s;", fullTableName, cols)
		if _, err := db.Exec(sqlStmt); err != nil {
			return fmt.Errorf("%q: %s", err, sqlStmt)
		}
		return nil
	}

	if err := newTable(l.populationPath, "Population",
		"(id integer not null primary key, age int, gender text, employment_status text, social_competence real, p_transport int, transport_duration real, household_id int, profession_index int, status text, severity text)"); err != nil {
		return err
	}
	if err := newTable(l.householdPath, "Households",
		"(id integer not null primary key, headcount int, family_type int, relationship text, archetype text, young int, middle int, elderly int, master_age text, master_gender text, house_master int, family1 text, family2 text, family3 text)"); err != nil {
		return err
	}
	if err := newTable(l.infectionPath, "Infections",
		"(id integer not null primary key, source_person_id int, target_person_id int, contraction_time real, kernel text)"); err != nil {
		return err
	}
	if err := newTable(l.progressionPath, "Progressions",
		"(id integer not null primary key, person_id int, tminus1 real, t0 real, t1 real, t2 real, tdeath real)"); err != nil {
		return err
	}
	return nil
}

func (l *SQLiteLogger) table(name string) string {
	return fmt.Sprintf("%s%03d", name, l.instanceID)
}

func (l *SQLiteLogger) WritePopulation(people []*Person, status map[int]InfectionStatus, severity map[int]Severity) error {
	db, err := OpenSQLiteDB(l.populationPath, "")
	if err != nil {
		return err
	}
	defer db.Close()
	stmt, err := db.Prepare(fmt.Sprintf(
		"insert into %s (id, age, gender, employment_status, social_competence, p_transport, transport_duration, household_id, profession_index, status, severity) values (?,?,?,?,?,?,?,?,?,?,?)",
		l.table("Population")))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range people {
		if _, err := stmt.Exec(p.ID, p.Age, p.Gender.String(), p.EmploymentStatus.String(), p.SocialCompetence,
			p.PublicTransportUsage, p.PublicTransportDuration, p.HouseholdID, p.ProfessionIndex,
			status[p.ID].String(), severity[p.ID].String()); err != nil {
			return err
		}
	}
	return nil
}

func (l *SQLiteLogger) WriteHouseholds(households []*Household) error {
	db, err := OpenSQLiteDB(l.householdPath, "")
	if err != nil {
		return err
	}
	defer db.Close()
	stmt, err := db.Prepare(fmt.Sprintf(
		"insert into %s (id, headcount, family_type, relationship, archetype, young, middle, elderly, master_age, master_gender, house_master, family1, family2, family3) values (?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		l.table("Households")))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, h := range households {
		if _, err := stmt.Exec(h.ID, h.Headcount, int(h.FamilyType), string(h.Relationship), string(h.Archetype),
			boolToInt(h.Presence.Young), boolToInt(h.Presence.Middle), boolToInt(h.Presence.Elderly),
			h.MasterAgeBucket.Label, h.MasterGender.String(), h.HouseMasterID,
			h.FamilyStructure[0], h.FamilyStructure[1], h.FamilyStructure[2]); err != nil {
			return err
		}
	}
	return nil
}

func (l *SQLiteLogger) WriteInfections(records []InfectionRecord) error {
	db, err := OpenSQLiteDB(l.infectionPath, "")
	if err != nil {
		return err
	}
	defer db.Close()
	stmt, err := db.Prepare(fmt.Sprintf(
		"insert into %s (source_person_id, target_person_id, contraction_time, kernel) values (?,?,?,?)",
		l.table("Infections")))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.Exec(r.SourcePersonID, r.TargetPersonID, r.ContractionTime, r.Kernel.String()); err != nil {
			return err
		}
	}
	return nil
}

func (l *SQLiteLogger) WriteProgressions(records map[int]*ProgressionRecord) error {
	db, err := OpenSQLiteDB(l.progressionPath, "")
	if err != nil {
		return err
	}
	defer db.Close()
	stmt, err := db.Prepare(fmt.Sprintf(
		"insert into %s (person_id, tminus1, t0, t1, t2, tdeath) values (?,?,?,?,?,?)",
		l.table("Progressions")))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		t1 := sqlNullable(r.T1, r.HasT1)
		t2 := sqlNullable(r.T2, r.HasT2)
		tdeath := sqlNullable(r.TDeath, r.HasDeath)
		if _, err := stmt.Exec(r.PersonID, r.TMinus1, r.T0, t1, t2, tdeath); err != nil {
			return err
		}
	}
	return nil
}

func sqlNullable(v float64, has bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: has}
}
