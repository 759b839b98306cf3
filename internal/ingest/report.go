package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
)

// Report carries the filing-level metadata joined onto every
// transaction of a modern-era folder.
type Report struct {
	ReportID               string
	CommitteeCode          string
	CommitteeName          string
	CandidateName          string
	ReportYear             int
	FilingDate             string
	StartDate              string
	EndDate                string
	Party                  string
	OfficeSought           string
	District               string
	CandidateCity          string
	ElectionCycle          string
	ElectionCycleStartDate string
	ElectionCycleEndDate   string
	DueDate                string
	AmendmentCount         int
	CommitteeType          string
	ZipCode                string
	SubmittedDate          string
	FolderName             string
}

// readReports loads a folder's Report.csv keyed by report ID. A missing
// file returns an empty map: legacy folders carry no report index.
func readReports(folderPath, folderName string) (map[string]*Report, error) {
	path := filepath.Join(folderPath, "Report.csv")
	rows, err := ReadCSVFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]*Report{}, nil
		}
		return nil, err
	}

	reports := make(map[string]*Report, len(rows))
	for _, row := range rows {
		id := row.Get("ReportId")
		if id == "" {
			continue
		}
		year, _ := strconv.Atoi(row.Get("ReportYear"))
		amendments, _ := strconv.Atoi(row.Get("AmendmentCount"))

		reports[id] = &Report{
			ReportID:               id,
			CommitteeCode:          row.Get("CommitteeCode"),
			CommitteeName:          row.Get("CommitteeName"),
			CandidateName:          row.Get("CandidateName"),
			ReportYear:             year,
			FilingDate:             row.Get("FilingDate"),
			StartDate:              row.Get("StartDate"),
			EndDate:                row.Get("EndDate"),
			Party:                  row.Get("Party"),
			OfficeSought:           row.Get("OfficeSought"),
			District:               row.Get("District"),
			CandidateCity:          row.Get("City"),
			ElectionCycle:          row.Get("ElectionCycle"),
			ElectionCycleStartDate: row.Get("ElectionCycleStartDate"),
			ElectionCycleEndDate:   row.Get("ElectionCycleEndDate"),
			DueDate:                row.Get("DueDate"),
			AmendmentCount:         amendments,
			CommitteeType:          row.Get("CommitteeType"),
			ZipCode:                row.Get("ZipCode"),
			SubmittedDate:          row.Get("SubmittedDate"),
			FolderName:             folderName,
		}
	}
	return reports, nil
}
