package resolve

import (
	"context"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/openelexva/reconcile/internal/calendar"
	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Failure reasons attached to unmatched contributions.
const (
	ReasonNoLookupEntry         = "no_lookup_entry"
	ReasonNoReceiptForCommittee = "no_receipt_for_committee"
	ReasonAmountOrDateMismatch  = "amount_or_date_mismatch"
)

// amountTolerance absorbs rounding differences between the two sides
// of a reported transfer.
var amountTolerance = decimal.NewFromFloat(0.01)

// Receipts may be reported up to thirty days before or sixty days
// after the disbursement they correspond to.
const (
	receiptWindowBefore = 30 * 24 * time.Hour
	receiptWindowAfter  = 60 * 24 * time.Hour
)

// purposePatterns select disbursements whose stated purpose marks them
// as political contributions.
var purposePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(political|campaign)\s+contribution\b`),
	regexp.MustCompile(`\bcontribution\s+(to|for)\b`),
	regexp.MustCompile(`\bpac\s+contribution\b`),
	regexp.MustCompile(`\b(primary|general)\s+\d{4}\b`),
	regexp.MustCompile(`\bfundraiser\b`),
	regexp.MustCompile(`\bstate\s+committee\s+contribution\b`),
	regexp.MustCompile(`\bcontribution\b`),
}

// donorCommitteeTypes are the filer types whose disbursements are
// candidates for the analysis.
var donorCommitteeTypes = map[string]bool{
	"Political Action Committee":       true,
	"Out of State Political Committee": true,
	"Political Party Committee":        true,
}

const candidateCommitteeType = "Candidate Campaign Committee"

// Options tune the unmatched contribution analysis.
type Options struct {
	MinYear       int
	MinAmount     decimal.Decimal
	CommitteeOnly string
	Workers       int
	ShowProgress  bool
}

// DefaultOptions returns the analysis defaults: contributions of at
// least a thousand dollars from 2018 onward.
func DefaultOptions() Options {
	return Options{
		MinYear:   2018,
		MinAmount: decimal.NewFromInt(1000),
		Workers:   runtime.NumCPU(),
	}
}

// Unmatched is one contribution with no corresponding receipt, plus
// the committee it was resolved to and the reason no receipt matched.
type Unmatched struct {
	Contribution     *model.TransactionRecord
	MatchedCommittee *model.CommitteeIdentity
	Reason           string
}

// Analyzer runs the unmatched contribution analysis over a processed
// transaction set.
type Analyzer struct {
	resolver *Resolver
	tables   *Tables
	opts     Options
}

// NewAnalyzer builds an analyzer over the given lookup tables.
func NewAnalyzer(tables *Tables, opts Options) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Analyzer{
		resolver: NewResolver(tables),
		tables:   tables,
		opts:     opts,
	}
}

// Analyze selects political contributions from the disbursement records
// and reports each one that has no matching receipt on the resolved
// committee's filings, in input order. Contributions are checked
// concurrently.
func (a *Analyzer) Analyze(ctx context.Context, records []*model.TransactionRecord) ([]Unmatched, error) {
	if a.tables.Empty() {
		return nil, common.ErrNoLookupTables
	}

	contributions := a.selectContributions(records)
	receiptsByCode := a.indexReceipts(records)

	common.LogInfo("unmatched contribution analysis starting", common.Fields{
		"contributions": len(contributions),
		"committees":    len(receiptsByCode),
		"workers":       a.opts.Workers,
	})

	var bar *progressbar.ProgressBar
	if a.opts.ShowProgress {
		bar = progressbar.Default(int64(len(contributions)), "crossmatching")
	}

	results := make([]*Unmatched, len(contributions))
	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < a.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = a.check(contributions[i], receiptsByCode)
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	var err error
feed:
	for i := range contributions {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	unmatched := make([]Unmatched, 0)
	for _, result := range results {
		if result != nil {
			unmatched = append(unmatched, *result)
		}
	}

	common.LogInfo("unmatched contribution analysis complete", common.Fields{
		"checked":   len(contributions),
		"unmatched": len(unmatched),
	})
	return unmatched, nil
}

// check resolves one contribution and looks for its receipt, retrying
// against the candidate's sibling committees before declaring it
// unmatched. A nil return means a receipt was found.
func (a *Analyzer) check(contribution *model.TransactionRecord, receiptsByCode map[string][]*model.TransactionRecord) *Unmatched {
	recipient := contribution.EntityNameNormalized
	if recipient == "" {
		recipient = contribution.CounterpartyName()
	}

	filingYear := contribution.ReportYear
	if filingYear == 0 {
		if date, ok := calendar.ParseDate(contribution.TransactionDate); ok {
			filingYear = date.Year()
		}
	}

	identity := a.resolver.ResolveCommittee(recipient, filingYear)
	if identity == nil {
		return &Unmatched{Contribution: contribution, Reason: ReasonNoLookupEntry}
	}

	receipts := receiptsByCode[identity.CommitteeCode]
	if a.matchReceipts(contribution, receipts) {
		return nil
	}

	if identity.IsCandidateCommittee() {
		for _, sibling := range a.tables.CommitteesForCandidate(identity.CandidateNameNormalized) {
			if sibling.CommitteeCode == identity.CommitteeCode {
				continue
			}
			if a.matchReceipts(contribution, receiptsByCode[sibling.CommitteeCode]) {
				return nil
			}
		}
	}

	reason := ReasonAmountOrDateMismatch
	if len(receipts) == 0 {
		reason = ReasonNoReceiptForCommittee
	}
	return &Unmatched{
		Contribution:     contribution,
		MatchedCommittee: identity,
		Reason:           reason,
	}
}

// matchReceipts reports whether any receipt corresponds to the
// contribution: same donor name, same amount within a cent, and a
// receipt date inside the reporting window. Unparseable dates pass the
// window check.
func (a *Analyzer) matchReceipts(contribution *model.TransactionRecord, receipts []*model.TransactionRecord) bool {
	donorName := contribution.CommitteeNameNormalized
	if donorName == "" {
		donorName = contribution.CommitteeName
	}
	donorName = strings.ToLower(strings.TrimSpace(donorName))
	if donorName == "" {
		return false
	}

	contribDate, hasContribDate := calendar.ParseDate(contribution.TransactionDate)

	for _, receipt := range receipts {
		receiptDonor := receipt.EntityNameNormalized
		if receiptDonor == "" {
			receiptDonor = receipt.CounterpartyName()
		}
		if strings.ToLower(strings.TrimSpace(receiptDonor)) != donorName {
			continue
		}

		if receipt.Amount.Sub(contribution.Amount).Abs().GreaterThan(amountTolerance) {
			continue
		}

		receiptDate, hasReceiptDate := calendar.ParseDate(receipt.TransactionDate)
		if hasContribDate && hasReceiptDate {
			delta := receiptDate.Sub(contribDate)
			if delta < -receiptWindowBefore || delta > receiptWindowAfter {
				continue
			}
		}
		return true
	}
	return false
}

// selectContributions filters the disbursements worth checking: large
// payments from political committees whose purpose reads like a
// contribution.
func (a *Analyzer) selectContributions(records []*model.TransactionRecord) []*model.TransactionRecord {
	committeeFilter := strings.ToUpper(strings.TrimSpace(a.opts.CommitteeOnly))

	out := make([]*model.TransactionRecord, 0)
	for _, rec := range records {
		if rec.Schedule != model.ScheduleD {
			continue
		}
		if !donorCommitteeTypes[rec.CommitteeType] {
			continue
		}
		if rec.ReportYear < a.opts.MinYear {
			continue
		}
		if rec.Amount.LessThan(a.opts.MinAmount) {
			continue
		}
		if len(strings.TrimSpace(rec.CounterpartyName())) <= 1 {
			continue
		}
		if !isPoliticalContribution(rec.Purpose) {
			continue
		}
		if committeeFilter != "" &&
			!strings.Contains(strings.ToUpper(rec.CommitteeNameNormalized), committeeFilter) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// indexReceipts buckets candidate committee receipts by committee code.
func (a *Analyzer) indexReceipts(records []*model.TransactionRecord) map[string][]*model.TransactionRecord {
	byCode := make(map[string][]*model.TransactionRecord)
	for _, rec := range records {
		if rec.Schedule != model.ScheduleA {
			continue
		}
		if rec.CommitteeType != candidateCommitteeType {
			continue
		}
		if rec.ReportYear < a.opts.MinYear {
			continue
		}
		if rec.Amount.LessThan(a.opts.MinAmount) {
			continue
		}
		if len(strings.TrimSpace(rec.CounterpartyName())) <= 5 {
			continue
		}
		byCode[rec.CommitteeCode] = append(byCode[rec.CommitteeCode], rec)
	}
	return byCode
}

func isPoliticalContribution(purpose string) bool {
	p := strings.ToLower(purpose)
	if p == "" {
		return false
	}
	for _, re := range purposePatterns {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}
