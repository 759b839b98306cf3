// Package dedupe removes exact and near duplicate transactions that
// survive amendment consolidation, typically records refiled across
// report folders with only bookkeeping columns changed.
package dedupe

import (
	"context"
	"strings"

	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"
)

// nearDuplicateMaxDiffs is how many substantive fields may differ
// between two records that still collapse as near duplicates.
const nearDuplicateMaxDiffs = 2

// flexibleFields are bookkeeping columns allowed to differ freely
// between near duplicates.
var flexibleFields = map[string]bool{
	"report_id":   true,
	"report_date": true,
	"on_time":     true,
	"folder_name": true,
}

// bucketFields are the grouping columns. They are equal by construction
// inside a bucket, so the diff count skips them too.
var bucketFields = map[string]bool{
	"amount":           true,
	"transaction_date": true,
	"candidate_name":   true,
	"entity_name":      true,
}

// Result carries the surviving records plus suppression counts.
type Result struct {
	Records         []*model.TransactionRecord
	ExactDuplicates int
	NearDuplicates  int
}

// Suppress removes duplicates in two passes: an exact hash pass over
// every field, then a near-duplicate pass inside buckets keyed by
// amount, transaction date, candidate and counterparty. Within a
// bucket, a record collapses into an earlier survivor when at most two
// substantive fields differ. First occurrence wins in both passes.
func Suppress(ctx context.Context, records []*model.TransactionRecord) (*Result, error) {
	result := &Result{}
	if len(records) == 0 {
		return result, nil
	}

	seen := make(map[string]bool, len(records))
	exact := make([]*model.TransactionRecord, 0, len(records))
	for _, rec := range records {
		hash := rec.Hash()
		if seen[hash] {
			result.ExactDuplicates++
			continue
		}
		seen[hash] = true
		exact = append(exact, rec)
	}

	buckets := make(map[string][]*model.TransactionRecord)
	order := make([]string, 0)
	for _, rec := range exact {
		key := bucketKey(rec)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], rec)
	}

	final := make([]*model.TransactionRecord, 0, len(exact))
	for _, key := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bucket := buckets[key]
		if len(bucket) == 1 {
			final = append(final, bucket[0])
			continue
		}

		survivors := make([]*model.TransactionRecord, 0, len(bucket))
		for _, rec := range bucket {
			duplicate := false
			for _, kept := range survivors {
				if fieldDifferences(rec, kept) <= nearDuplicateMaxDiffs {
					duplicate = true
					break
				}
			}
			if duplicate {
				result.NearDuplicates++
				continue
			}
			survivors = append(survivors, rec)
		}
		final = append(final, survivors...)
	}

	result.Records = final
	common.LogInfo("duplicate suppression complete", common.Fields{
		"input": len(records),
		"kept":  len(final),
		"exact": result.ExactDuplicates,
		"near":  result.NearDuplicates,
	})
	return result, nil
}

// bucketKey joins the fields two records must share before they are
// even considered near duplicates.
func bucketKey(rec *model.TransactionRecord) string {
	return strings.Join([]string{
		rec.Amount.StringFixed(2),
		rec.TransactionDate,
		rec.CandidateName,
		rec.CounterpartyName(),
	}, "|")
}

// fieldDifferences counts substantive field mismatches between two
// records, skipping the flexible bookkeeping columns and the bucket
// keys.
func fieldDifferences(a, b *model.TransactionRecord) int {
	fieldsA := a.Fields()
	fieldsB := b.Fields()

	diffs := 0
	for key, valA := range fieldsA {
		if flexibleFields[key] || bucketFields[key] {
			continue
		}
		if valA != fieldsB[key] {
			diffs++
		}
	}
	return diffs
}
