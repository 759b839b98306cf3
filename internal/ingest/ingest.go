// Package ingest walks the raw campaign finance extracts and turns
// their CSV rows into annotated transaction records. The extracts come
// in two eras: flat yearly folders through 2011 and monthly folders
// with a Report.csv index from 2012 on.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/openelexva/reconcile/internal/calendar"
	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"
	"github.com/openelexva/reconcile/internal/normalize"
	"github.com/openelexva/reconcile/internal/office"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Options configure an ingestion run.
type Options struct {
	// MinFolderYear skips folders before the given year when set.
	MinFolderYear int
	// IncludeLegacy controls whether pre-2012 yearly folders are read.
	IncludeLegacy bool
	ShowProgress  bool
}

// Processor reads raw extract folders into transaction records.
type Processor struct {
	normalizer *normalize.Normalizer
	calendar   *calendar.Calendar
	opts       Options
	warns      *WarnContext
}

// NewProcessor builds a processor. A nil normalizer or calendar falls
// back to the defaults.
func NewProcessor(normalizer *normalize.Normalizer, cal *calendar.Calendar, opts Options) *Processor {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	if cal == nil {
		cal = calendar.New()
	}
	return &Processor{
		normalizer: normalizer,
		calendar:   cal,
		opts:       opts,
		warns:      NewWarnContext(),
	}
}

// ProcessDirectory ingests every data folder under root in name order
// and returns the combined transaction records.
func (p *Processor) ProcessDirectory(ctx context.Context, root string) ([]*model.TransactionRecord, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !IsDataFolder(entry.Name()) {
			continue
		}
		name := entry.Name()
		if IsLegacyFolder(name) && !p.opts.IncludeLegacy {
			continue
		}
		if p.opts.MinFolderYear > 0 {
			year, err := FolderYear(name)
			if err != nil || year < p.opts.MinFolderYear {
				continue
			}
		}
		folders = append(folders, name)
	}
	sort.Strings(folders)

	if len(folders) == 0 {
		return nil, common.ErrNoRecords
	}

	common.LogInfo("ingestion starting", common.Fields{
		"root":    root,
		"folders": len(folders),
	})

	var bar *progressbar.ProgressBar
	if p.opts.ShowProgress {
		bar = progressbar.Default(int64(len(folders)), "ingesting folders")
	}

	records := make([]*model.TransactionRecord, 0)
	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		folderRecords, err := p.processFolder(filepath.Join(root, folder), folder)
		if err != nil {
			return nil, fmt.Errorf("processing folder %s: %w", folder, err)
		}
		records = append(records, folderRecords...)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	common.LogInfo("ingestion complete", common.Fields{
		"folders":  len(folders),
		"records":  len(records),
		"warnings": p.warns.Count(),
	})
	return records, nil
}

func (p *Processor) processFolder(folderPath, folderName string) ([]*model.TransactionRecord, error) {
	legacy := IsLegacyFolder(folderName)

	var reports map[string]*Report
	if !legacy {
		var err error
		reports, err = readReports(folderPath, folderName)
		if err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, err
	}

	records := make([]*model.TransactionRecord, 0)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.EqualFold(name, "Report.csv") {
			continue
		}

		schedule, ok := ScheduleFromFilename(name)
		if !ok {
			continue
		}
		if model.SkippedSchedules[string(schedule)] {
			common.LogDebug("skipping summary schedule", common.Fields{
				"folder": folderName,
				"file":   name,
			})
			continue
		}
		if !model.TransactionalSchedules[schedule] {
			continue
		}

		rows, err := ReadCSVFile(filepath.Join(folderPath, name))
		if err != nil {
			// A single unreadable file never fails the folder.
			common.LogWarn("skipping unreadable schedule file", common.Fields{
				"folder": folderName,
				"file":   name,
				"error":  err.Error(),
			})
			continue
		}

		for _, row := range rows {
			var rec *model.TransactionRecord
			if legacy {
				rec = p.mapLegacyRow(row, folderName, schedule)
			} else {
				rec = p.mapModernRow(row, folderName, schedule, reports)
			}
			if rec != nil {
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// mapLegacyRow maps a pre-2012 extract row. The flat format has no
// report index, so filing metadata comes from the row itself and the
// report year falls back to the folder name.
func (p *Processor) mapLegacyRow(row Row, folderName string, schedule model.ScheduleType) *model.TransactionRecord {
	amount := p.parseAmountField(row.Get("Trans Amount", "TRANS_AMNT", "Trans_Amount"), folderName)
	totalToDate, _ := ParseAmount(row.Get("Trans Agg To Date", "TRANS_AGG_TO_DATE"))

	candidateName := legacyCandidateName(row)
	entityName := legacyEntityName(row)

	officeSought := row.Get("Office Code", "OFFICE_CODE")
	district := row.Get("Office Sub Code", "OFFICE_SUB_CODE")
	officeNormal := office.NormalizeOffice(officeSought)
	level := office.DetermineLevel(officeNormal, district)
	districtNormal := office.NormalizeDistrict(district, "", level, officeSought)

	reportYearStr := row.Get("Report Year", "REPORT_YEAR")
	if reportYearStr == "" {
		reportYearStr = folderName
	}
	reportYear, _ := strconv.Atoi(reportYearStr)

	transactionDate := row.Get("Trans Date", "TRANS_DATE")
	reportDate := row.Get("Date Received", "DATE_RECEIVED")

	return &model.TransactionRecord{
		ReportID:                row.Get("Committee Code", "COMMITTEE_CODE"),
		CommitteeCode:           row.Get("Committee Code", "COMMITTEE_CODE"),
		CommitteeName:           row.Get("Committee Name", "COMMITTEE_NAME"),
		CommitteeNameNormalized: p.normalizer.Normalize(row.Get("Committee Name", "COMMITTEE_NAME"), normalize.KindOrganization),
		CandidateName:           candidateName,
		CandidateNameNormalized: p.normalizer.Normalize(candidateName, normalize.KindIndividual),
		ReportYear:              reportYear,
		ReportDate:              reportDate,
		Party:                   row.Get("Party", "Party_Desc"),
		OfficeSought:            officeSought,
		OfficeSoughtNormal:      officeNormal,
		District:                district,
		DistrictNormal:          districtNormal,
		Level:                   level,
		Schedule:                schedule,
		TransactionType:         row.Get("Trans Type", "TRANS_TYPE"),
		TransactionDate:         transactionDate,
		Amount:                  amount,
		TotalToDate:             totalToDate,
		Purpose:                 row.Get("Trans Service Or Goods", "TRANS_ITEM_OR_SERVICE"),
		EntityName:              entityName,
		EntityNameNormalized:    p.normalizer.Normalize(entityName, normalize.KindUnknown),
		EntityFirstName:         row.Get("First Name", "FIRSTNAME"),
		EntityLastName:          row.Get("Last Name", "LASTNAME"),
		EntityAddress:           row.Get("Entity Address", "ENTITY_ADDRESS"),
		EntityCity:              row.Get("Entity City", "ENTITY_CITY"),
		EntityState:             row.Get("Entity State", "ENTITY_STATE"),
		EntityZip:               row.Get("Entity Zip", "ENTITY_ZIP"),
		EntityEmployer:          row.Get("Entity Employer", "ENTITY_EMPLOYER"),
		EntityOccupation:        row.Get("Entity Occupation", "ENTITY_OCCUPATION"),
		DataSource:              model.SourceLegacy,
		FolderName:              folderName,
		OnTime:                  p.calendar.OnTime(transactionDate, reportDate, "", reportYearStr),
	}
}

// mapModernRow maps a 2012-onward row, joining filing metadata from the
// folder's Report.csv. Rows whose report is missing from the index keep
// their transaction data and log once per report ID.
func (p *Processor) mapModernRow(row Row, folderName string, schedule model.ScheduleType, reports map[string]*Report) *model.TransactionRecord {
	reportID := row.Get("ReportId")
	report := reports[reportID]
	if report == nil {
		if reportID != "" {
			p.warns.Warn("missing-report-"+reportID, "transaction without matching report entry", common.Fields{
				"folder":    folderName,
				"report_id": reportID,
			})
		}
		report = &Report{}
	}

	amount := p.parseAmountField(row.Get("Amount"), folderName)
	totalToDate, _ := ParseAmount(row.Get("TotalToDate"))

	isIndividual := parseBoolFlag(row.Get("IsIndividual"))
	entityName := modernEntityName(row)

	officeNormal := office.NormalizeOffice(report.OfficeSought)
	level := office.DetermineLevel(officeNormal, report.District)
	districtNormal := office.NormalizeDistrict(report.District, report.CandidateCity, level, report.OfficeSought)

	transactionDate := row.Get("TransactionDate")

	return &model.TransactionRecord{
		ReportID:                reportID,
		CommitteeCode:           report.CommitteeCode,
		CommitteeName:           report.CommitteeName,
		CommitteeNameNormalized: p.normalizer.Normalize(report.CommitteeName, normalize.KindOrganization),
		CandidateName:           report.CandidateName,
		CandidateNameNormalized: p.normalizer.Normalize(report.CandidateName, normalize.KindIndividual),
		CommitteeType:           report.CommitteeType,
		ZipCode:                 report.ZipCode,
		ReportYear:              report.ReportYear,
		ReportDate:              report.FilingDate,
		SubmittedDate:           report.SubmittedDate,
		DueDate:                 report.DueDate,
		Party:                   report.Party,
		OfficeSought:            report.OfficeSought,
		OfficeSoughtNormal:      officeNormal,
		District:                report.District,
		DistrictNormal:          districtNormal,
		Level:                   level,
		CandidateCity:           report.CandidateCity,
		ElectionCycle:           report.ElectionCycle,
		ElectionCycleStartDate:  report.ElectionCycleStartDate,
		ElectionCycleEndDate:    report.ElectionCycleEndDate,
		PrimaryOrGeneral:        office.DetermineCycle(report.ElectionCycle),
		Schedule:                schedule,
		TransactionType:         string(schedule),
		TransactionDate:         transactionDate,
		Amount:                  amount,
		TotalToDate:             totalToDate,
		Purpose:                 row.Get("ItemOrService", "ProductOrService", "PurposeOfObligation"),
		EntityName:              entityName,
		EntityNameNormalized:    p.normalizer.Normalize(entityName, normalize.KindFromBool(isIndividual)),
		EntityFirstName:         row.Get("FirstName"),
		EntityLastName:          row.Get("LastOrCompanyName"),
		EntityAddress:           row.Get("AddressLine1"),
		EntityCity:              row.Get("City"),
		EntityState:             row.Get("StateCode"),
		EntityZip:               row.Get("ZipCode"),
		EntityEmployer:          row.Get("NameOfEmployer"),
		EntityOccupation:        row.Get("OccupationOrTypeOfBusiness"),
		EntityIsIndividual:      isIndividual,
		AmendmentCount:          report.AmendmentCount,
		DataSource:              model.SourceModern,
		FolderName:              folderName,
		OnTime: p.calendar.OnTime(
			transactionDate,
			report.FilingDate,
			report.ElectionCycle,
			strconv.Itoa(report.ReportYear),
		),
	}
}

// parseAmountField parses a money field, warning once per folder when a
// value does not parse. Unparseable amounts keep the record at zero.
func (p *Processor) parseAmountField(raw string, folderName string) decimal.Decimal {
	amount, ok := ParseAmount(raw)
	if !ok {
		p.warns.Warn("bad-amount-"+folderName, "unparseable amount value", common.Fields{
			"folder": folderName,
			"value":  raw,
		})
	}
	return amount
}

// legacyCandidateName builds the candidate name from the old format's
// name parts, falling back to the committee name.
func legacyCandidateName(row Row) string {
	first := row.Get("First Name", "FIRSTNAME")
	last := row.Get("Last Name", "LASTNAME")
	middle := row.Get("Middle Name", "MIDDLENAME")

	if first != "" && last != "" {
		return joinNameParts(first, middle, last)
	}
	return row.Get("Committee Name", "COMMITTEE_NAME")
}

// legacyEntityName returns the counterparty from the old format, built
// from name parts when no entity column is populated.
func legacyEntityName(row Row) string {
	if name := row.Get("Entity Name", "ENTITY_NAME"); name != "" {
		return name
	}
	first := row.Get("First Name", "FIRSTNAME")
	last := row.Get("Last Name", "LASTNAME")
	middle := row.Get("Middle Name", "MIDDLENAME")
	if first != "" || last != "" {
		return joinNameParts(first, middle, last)
	}
	return ""
}

// modernEntityName builds the counterparty name from the new format's
// split name columns.
func modernEntityName(row Row) string {
	lastOrCompany := row.Get("LastOrCompanyName")
	if lastOrCompany == "" {
		return ""
	}
	first := row.Get("FirstName")
	if first == "" {
		return lastOrCompany
	}
	return joinNameParts(first, row.Get("MiddleName"), lastOrCompany)
}

func joinNameParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// parseBoolFlag converts the IsIndividual column's numeric flag to a
// tri-state bool: blank or non-numeric values stay unknown.
func parseBoolFlag(value string) *bool {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	b := f != 0
	return &b
}
