package outbreaksim

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"
)

// CSVLogger is a DataLogger that writes simulation output as
// comma-delimited files, one set per seed index, grounded on the
// teacher's own CSVLogger (same bytes.Buffer + fmt.Sprintf template +
// AppendToFile idiom, generalised from genotype/status rows to this
// domain's population/household/infection/progression rows).
type CSVLogger struct {
	populationPath   string
	householdPath    string
	infectionPath    string
	progressionPath  string
}

// NewCSVLogger creates a new logger that writes data into CSV files.
func NewCSVLogger(basepath string, i int) *CSVLogger {
	l := new(CSVLogger)
	l.SetBasePath(basepath, i)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *CSVLogger) SetBasePath(basepath string, i int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += "log"
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.populationPath = trimmed + fmt.Sprintf(".%03d.%s.csv", i, "population")
	l.householdPath = trimmed + fmt.Sprintf(".%03d.%s.csv", i, "households")
	l.infectionPath = trimmed + fmt.Sprintf(".%03d.%s.csv", i, "infections")
	l.progressionPath = trimmed + fmt.Sprintf(".%03d.%s.csv", i, "progressions")
}

// Init creates CSV files and writes header information for each file.
func (l *CSVLogger) Init() error {
	newFile := func(path, header string) error {
		var b bytes.Buffer
		b.WriteString(header)
		return NewFile(path, b.Bytes())
	}
	if err := newFile(l.populationPath, "id,age,gender,employment_status,social_competence,p_transport,transport_duration,household_id,profession_index,status,severity\n"); err != nil {
		return err
	}
	if err := newFile(l.householdPath, "household_index,household_headcount,family_type,relationship,house_master_archetype,young,middle,elderly,master_age,master_gender,house_master,family1,family2,family3\n"); err != nil {
		return err
	}
	if err := newFile(l.infectionPath, "source_person_id,target_person_id,contraction_time,kernel\n"); err != nil {
		return err
	}
	if err := newFile(l.progressionPath, "person_id,tminus1,t0,t1,t2,tdeath\n"); err != nil {
		return err
	}
	return nil
}

// WritePopulation records one row per person with final status and
// severity (spec §6 Population output).
func (l *CSVLogger) WritePopulation(people []*Person, status map[int]InfectionStatus, severity map[int]Severity) error {
	const template = "%d,%d,%s,%s,%f,%d,%f,%d,%d,%s,%s\n"
	var b bytes.Buffer
	for _, p := range people {
		b.WriteString(fmt.Sprintf(template,
			p.ID, p.Age, p.Gender, p.EmploymentStatus, p.SocialCompetence,
			p.PublicTransportUsage, p.PublicTransportDuration, p.HouseholdID,
			p.ProfessionIndex, status[p.ID], severity[p.ID],
		))
	}
	return AppendToFile(l.populationPath, b.Bytes())
}

// WriteHouseholds records one row per household (spec §6 Households
// output).
func (l *CSVLogger) WriteHouseholds(households []*Household) error {
	const template = "%d,%d,%d,%s,%s,%d,%d,%d,%s,%s,%d,%s,%s,%s\n"
	var b bytes.Buffer
	for _, h := range households {
		b.WriteString(fmt.Sprintf(template,
			h.ID, h.Headcount, int(h.FamilyType), h.Relationship, h.Archetype,
			boolToInt(h.Presence.Young), boolToInt(h.Presence.Middle), boolToInt(h.Presence.Elderly),
			h.MasterAgeBucket.Label, h.MasterGender, h.HouseMasterID,
			h.FamilyStructure[0], h.FamilyStructure[1], h.FamilyStructure[2],
		))
	}
	return AppendToFile(l.householdPath, b.Bytes())
}

// WriteInfections records the append-only transmission log (spec §6
// Event log output).
func (l *CSVLogger) WriteInfections(records []InfectionRecord) error {
	const template = "%d,%d,%f,%s\n"
	var b bytes.Buffer
	for _, r := range records {
		b.WriteString(fmt.Sprintf(template, r.SourcePersonID, r.TargetPersonID, r.ContractionTime, r.Kernel))
	}
	return AppendToFile(l.infectionPath, b.Bytes())
}

// WriteProgressions records the per-person disease timeline, leaving
// the field empty for optional timestamps that never occurred (spec
// §3: "null meaning this branch did not occur").
func (l *CSVLogger) WriteProgressions(records map[int]*ProgressionRecord) error {
	const template = "%d,%f,%f,%s,%s,%s\n"
	var b bytes.Buffer
	for _, r := range records {
		b.WriteString(fmt.Sprintf(template,
			r.PersonID, r.TMinus1, r.T0,
			optionalFloat(r.T1, r.HasT1), optionalFloat(r.T2, r.HasT2), optionalFloat(r.TDeath, r.HasDeath),
		))
	}
	return AppendToFile(l.progressionPath, b.Bytes())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func optionalFloat(v float64, has bool) string {
	if !has {
		return ""
	}
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%f", v)
}
