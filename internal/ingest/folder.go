package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"
)

var (
	legacyFolderRe = regexp.MustCompile(`^\d{4}$`)
	modernFolderRe = regexp.MustCompile(`^\d{4}_\d{2}$`)
	scheduleFileRe = regexp.MustCompile(`(?i)^(Schedule[A-Z])(_PAC)?\.csv$`)
)

// legacyFolderMaxYear is the last year the state published the flat
// yearly extract format.
const legacyFolderMaxYear = 2011

// IsLegacyFolder reports whether a folder name follows the flat yearly
// convention of the pre-2012 extracts.
func IsLegacyFolder(name string) bool {
	if !legacyFolderRe.MatchString(name) {
		return false
	}
	year, _ := strconv.Atoi(name)
	return year <= legacyFolderMaxYear
}

// FolderYear extracts the year from a data folder name, either the
// yearly "2008" form or the monthly "2024_03" form.
func FolderYear(name string) (int, error) {
	switch {
	case legacyFolderRe.MatchString(name):
		return strconv.Atoi(name)
	case modernFolderRe.MatchString(name):
		return strconv.Atoi(strings.SplitN(name, "_", 2)[0])
	default:
		return 0, common.ErrUnknownFolder
	}
}

// IsDataFolder reports whether the name matches either folder
// convention.
func IsDataFolder(name string) bool {
	return legacyFolderRe.MatchString(name) || modernFolderRe.MatchString(name)
}

// ScheduleFromFilename extracts the schedule type from a CSV filename.
// PAC variants fold into the base schedule. Returns false for files
// that are not schedule extracts.
func ScheduleFromFilename(filename string) (model.ScheduleType, bool) {
	m := scheduleFileRe.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	schedule := "Schedule" + strings.ToUpper(m[1][len(m[1])-1:])
	return model.ScheduleType(schedule), true
}
