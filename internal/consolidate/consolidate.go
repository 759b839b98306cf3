// Package consolidate collapses amended filings down to the latest
// amendment of each reported transaction.
package consolidate

import (
	"context"
	"sort"
	"time"

	"github.com/openelexva/reconcile/internal/calendar"
	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"
)

const unknownKey = "UNKNOWN"

// Consolidator groups candidate amendment chains and keeps only the
// records carrying the highest amendment count in each chain.
type Consolidator struct {
	threshold int
}

// New returns a consolidator using the given fuzzy name threshold.
// Thresholds outside 0..100 fall back to the default.
func New(threshold int) *Consolidator {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultFuzzyThreshold
	}
	return &Consolidator{threshold: threshold}
}

// groupKey is the strict pre-filter for amendment candidates. Two
// records can only supersede each other when every key field agrees;
// fuzzy name and date proximity checks then run within the group.
type groupKey struct {
	committeeCode      string
	nameClean          string
	amountCents        string
	monthBucket        string
	zipCode            string
	committeeType      string
	transactionType    string
	entityIsIndividual string
	entityZip          string
	scheduleType       string
	primaryOrGeneral   string
	officeSoughtNormal string
	districtNormal     string
}

type member struct {
	record  *model.TransactionRecord
	date    time.Time
	hasDate bool
}

// Consolidate returns the records that survive amendment processing, in
// a stable (committee, entity, amount, amendment count) order. Input
// order breaks remaining ties. The context is checked between groups so
// large runs can be cancelled.
func (c *Consolidator) Consolidate(ctx context.Context, records []*model.TransactionRecord) ([]*model.TransactionRecord, error) {
	if len(records) == 0 {
		return records, nil
	}

	groups := make(map[groupKey][]member)
	order := make([]groupKey, 0)
	for _, rec := range records {
		key := keyFor(rec)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		date, hasDate := calendar.ParseDate(rec.TransactionDate)
		groups[key] = append(groups[key], member{record: rec, date: date, hasDate: hasDate})
	}

	kept := make([]*model.TransactionRecord, 0, len(records))

	for _, key := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		group := groups[key]
		if len(group) == 1 {
			kept = append(kept, group[0].record)
			continue
		}

		processed := make([]bool, len(group))
		for i := range group {
			if processed[i] {
				continue
			}

			cluster := []int{i}
			for j := range group {
				if j == i || processed[j] {
					continue
				}
				if c.sameTransaction(group[i], group[j]) {
					cluster = append(cluster, j)
				}
			}

			if len(cluster) == 1 {
				kept = append(kept, group[i].record)
				processed[i] = true
				continue
			}

			maxAmendment := group[cluster[0]].record.AmendmentCount
			for _, idx := range cluster[1:] {
				if n := group[idx].record.AmendmentCount; n > maxAmendment {
					maxAmendment = n
				}
			}
			for _, idx := range cluster {
				if group[idx].record.AmendmentCount == maxAmendment {
					kept = append(kept, group[idx].record)
				}
				processed[idx] = true
			}
		}
	}

	kept = dropExactDuplicates(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.CommitteeCode != b.CommitteeCode {
			return a.CommitteeCode < b.CommitteeCode
		}
		if a.EntityNameNormalized != b.EntityNameNormalized {
			return a.EntityNameNormalized < b.EntityNameNormalized
		}
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp < 0
		}
		return a.AmendmentCount < b.AmendmentCount
	})

	common.LogInfo("amendment consolidation complete", common.Fields{
		"input":      len(records),
		"kept":       len(kept),
		"superseded": len(records) - len(kept),
	})

	return kept, nil
}

// sameTransaction reports whether two group members describe the same
// underlying transaction: fuzzy-equal entity names and dates within
// thirty days. Members without a parseable date never match.
func (c *Consolidator) sameTransaction(a, b member) bool {
	if !namesMatch(a.record.EntityNameNormalized, b.record.EntityNameNormalized, c.threshold) {
		return false
	}
	if !a.hasDate || !b.hasDate {
		return false
	}
	diff := a.date.Sub(b.date)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 30*24*time.Hour
}

func keyFor(rec *model.TransactionRecord) groupKey {
	nameClean := rec.EntityNameNormalized
	if nameClean == "" {
		nameClean = unknownKey
	}
	committee := rec.CommitteeCode
	if committee == "" {
		committee = unknownKey
	}

	monthBucket := ""
	if date, ok := calendar.ParseDate(rec.TransactionDate); ok {
		monthBucket = date.Format("2006-01")
	}

	isIndividual := ""
	if rec.EntityIsIndividual != nil {
		if *rec.EntityIsIndividual {
			isIndividual = "true"
		} else {
			isIndividual = "false"
		}
	}

	return groupKey{
		committeeCode:      committee,
		nameClean:          nameClean,
		amountCents:        rec.Amount.StringFixed(2),
		monthBucket:        monthBucket,
		zipCode:            rec.ZipCode,
		committeeType:      rec.CommitteeType,
		transactionType:    rec.TransactionType,
		entityIsIndividual: isIndividual,
		entityZip:          rec.EntityZip,
		scheduleType:       string(rec.Schedule),
		primaryOrGeneral:   rec.PrimaryOrGeneral,
		officeSoughtNormal: rec.OfficeSoughtNormal,
		districtNormal:     rec.DistrictNormal,
	}
}

// dropExactDuplicates removes records that are byte-identical across
// every field, keeping the first occurrence.
func dropExactDuplicates(records []*model.TransactionRecord) []*model.TransactionRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, rec := range records {
		hash := rec.Hash()
		if seen[hash] {
			continue
		}
		seen[hash] = true
		out = append(out, rec)
	}
	return out
}
