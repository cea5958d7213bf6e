package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortKey string

const (
	SortNone     SortKey = ""
	SortByID     SortKey = "id"
	SortByName   SortKey = "name"
	SortByIncome SortKey = "income"
	SortByCredit SortKey = "credit"
	SortByRisk   SortKey = "risk"
)

var sortKeys = []SortKey{SortByID, SortByName, SortByIncome, SortByCredit, SortByRisk}

// SortKeys lists the accepted --sort values.
func SortKeys() []string {
	out := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		out[i] = string(k)
	}
	return out
}

func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNone, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(SortKeys(), ", "))
}

// SortRows orders rows in place. The sort is stable, so rows with equal keys
// keep their server order. SortNone leaves rows untouched.
func SortRows(rows []Row, key SortKey, desc bool) {
	compare := comparator(key)
	if compare == nil {
		return
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func comparator(key SortKey) func(a, b Row) int {
	switch key {
	case SortByID:
		return func(a, b Row) int { return strings.Compare(a.CustomerID, b.CustomerID) }
	case SortByName:
		return func(a, b Row) int { return strings.Compare(a.Name, b.Name) }
	case SortByIncome:
		return func(a, b Row) int { return a.MonthlyIncome.Cmp(b.MonthlyIncome) }
	case SortByCredit:
		return func(a, b Row) int { return cmp.Compare(a.CreditScore, b.CreditScore) }
	case SortByRisk:
		return func(a, b Row) int { return cmp.Compare(a.RiskScore, b.RiskScore) }
	default:
		return nil
	}
}
