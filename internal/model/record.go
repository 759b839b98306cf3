// Package model defines the core data types shared across the
// reconciliation pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ScheduleType identifies the transactional filing category a record was
// reported under. Schedules G, H and E are summary-level and never enter
// the engine.
type ScheduleType string

// Transactional schedules.
const (
	ScheduleA ScheduleType = "ScheduleA" // receipts
	ScheduleB ScheduleType = "ScheduleB" // in-kind receipts
	ScheduleC ScheduleType = "ScheduleC" // loans received
	ScheduleD ScheduleType = "ScheduleD" // disbursements
	ScheduleF ScheduleType = "ScheduleF" // loan repayments / independent expenditures
	ScheduleI ScheduleType = "ScheduleI" // other
)

// TransactionalSchedules is the set of schedules the engine processes.
var TransactionalSchedules = map[ScheduleType]bool{
	ScheduleA: true,
	ScheduleB: true,
	ScheduleC: true,
	ScheduleD: true,
	ScheduleF: true,
	ScheduleI: true,
}

// SkippedSchedules are summary/loan schedules excluded from the engine.
var SkippedSchedules = map[string]bool{
	"ScheduleG": true,
	"ScheduleH": true,
	"ScheduleE": true,
}

// GovernmentLevel is the level of government an office belongs to.
type GovernmentLevel string

const (
	LevelFederal GovernmentLevel = "federal"
	LevelState   GovernmentLevel = "state"
	LevelLocal   GovernmentLevel = "local"
)

// DataSource distinguishes the two filing-era schemas.
type DataSource string

const (
	SourceLegacy DataSource = "old"
	SourceModern DataSource = "new"
)

// TransactionRecord is one reported financial event, carrying every input
// field plus the derived normalization columns. Date fields stay as raw
// strings: unparseable dates null the derived values but never drop the
// record.
type TransactionRecord struct {
	ReportID      string
	CommitteeCode string
	CommitteeName string
	CandidateName string
	CommitteeType string
	ZipCode       string

	CommitteeNameNormalized string
	CandidateNameNormalized string

	ReportYear    int
	ReportDate    string
	SubmittedDate string
	DueDate       string
	Party         string

	OfficeSought       string
	OfficeSoughtNormal string
	District           string
	DistrictNormal     string
	Level              GovernmentLevel
	CandidateCity      string

	ElectionCycle          string
	ElectionCycleStartDate string
	ElectionCycleEndDate   string
	PrimaryOrGeneral       string

	Schedule        ScheduleType
	TransactionType string
	TransactionDate string
	Amount          decimal.Decimal
	TotalToDate     decimal.Decimal
	Purpose         string

	EntityName           string
	EntityNameNormalized string
	EntityFirstName      string
	EntityLastName       string
	EntityAddress        string
	EntityCity           string
	EntityState          string
	EntityZip            string
	EntityEmployer       string
	EntityOccupation     string
	EntityIsIndividual   *bool

	AmendmentCount int
	DataSource     DataSource
	FolderName     string

	// OnTime is tri-state: nil when the filing deadline cannot be
	// determined from the available dates.
	OnTime *bool
}

// Fields flattens the record into a stable field→string map. The dedup
// passes hash and diff records through this representation so that every
// column participates unless explicitly excluded.
func (r *TransactionRecord) Fields() map[string]string {
	boolStr := func(b *bool) string {
		if b == nil {
			return "NULL"
		}
		return fmt.Sprintf("%t", *b)
	}
	return map[string]string{
		"report_id":                 r.ReportID,
		"committee_code":            r.CommitteeCode,
		"committee_name":            r.CommitteeName,
		"committee_name_normalized": r.CommitteeNameNormalized,
		"candidate_name":            r.CandidateName,
		"candidate_name_normalized": r.CandidateNameNormalized,
		"committee_type":            r.CommitteeType,
		"zip_code":                  r.ZipCode,
		"report_year":               fmt.Sprintf("%d", r.ReportYear),
		"report_date":               r.ReportDate,
		"submitted_date":            r.SubmittedDate,
		"due_date":                  r.DueDate,
		"party":                     r.Party,
		"office_sought":             r.OfficeSought,
		"office_sought_normal":      r.OfficeSoughtNormal,
		"district":                  r.District,
		"district_normal":           r.DistrictNormal,
		"level":                     string(r.Level),
		"candidate_city":            r.CandidateCity,
		"election_cycle":            r.ElectionCycle,
		"primary_or_general":        r.PrimaryOrGeneral,
		"schedule_type":             string(r.Schedule),
		"transaction_type":          r.TransactionType,
		"transaction_date":          r.TransactionDate,
		"amount":                    r.Amount.StringFixed(2),
		"total_to_date":             r.TotalToDate.StringFixed(2),
		"purpose":                   r.Purpose,
		"entity_name":               r.EntityName,
		"entity_name_normalized":    r.EntityNameNormalized,
		"entity_first_name":         r.EntityFirstName,
		"entity_last_name":          r.EntityLastName,
		"entity_address":            r.EntityAddress,
		"entity_city":               r.EntityCity,
		"entity_state":              r.EntityState,
		"entity_zip":                r.EntityZip,
		"entity_employer":           r.EntityEmployer,
		"entity_occupation":         r.EntityOccupation,
		"entity_is_individual":      boolStr(r.EntityIsIndividual),
		"amendment_count":           fmt.Sprintf("%d", r.AmendmentCount),
		"data_source":               string(r.DataSource),
		"folder_name":               r.FolderName,
		"on_time":                   boolStr(r.OnTime),
	}
}

// Hash returns a digest over every field of the record, used for exact
// duplicate detection.
func (r *TransactionRecord) Hash() string {
	fields := r.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(fields[k])
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%x", sum)
}

// CounterpartyName returns the non-filer side of the transaction from
// whichever name field is populated. Older extracts stored the entity
// under schedule-specific columns, all mapped onto EntityName here, so
// the fallback chain is short.
func (r *TransactionRecord) CounterpartyName() string {
	if r.EntityName != "" {
		return r.EntityName
	}
	parts := make([]string, 0, 2)
	if r.EntityFirstName != "" {
		parts = append(parts, r.EntityFirstName)
	}
	if r.EntityLastName != "" {
		parts = append(parts, r.EntityLastName)
	}
	return strings.Join(parts, " ")
}
