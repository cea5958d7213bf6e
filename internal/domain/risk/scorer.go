// Package risk holds the single risk-score formula shared by the HTTP service,
// the batch job and the riskctl client. Nothing else in the module may compute
// a score on its own.
package risk

import (
	"fmt"
	"math"
)

const (
	creditScoreWeight     = 0.4
	repaymentWeight       = 0.3
	loanIncomeRatioWeight = 0.3

	maxCreditScore = 850.0

	MinScore = 0
	MaxScore = 100

	// HighRiskThreshold is exclusive: a score must exceed it to alert.
	HighRiskThreshold = 70
	// MediumRiskThreshold is exclusive as well.
	MediumRiskThreshold = 50

	BucketWidth = 20
)

type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Input is the subset of customer data the formula reads.
type Input struct {
	CreditScore          int
	MonthlyIncome        float64
	OutstandingLoans     float64
	LoanRepaymentHistory []int
}

// Score returns the customer's risk score as an integer in [0, 100].
//
// An empty repayment history contributes a repayment score of 0 and a
// non-positive income caps the loan-income ratio, so the result is always a
// finite number even for records that ingestion would reject.
func Score(in Input) int {
	repaymentScore := RepaymentScore(in.LoanRepaymentHistory)
	normalizedLoanIncome := NormalizedLoanIncome(in.OutstandingLoans, in.MonthlyIncome)

	score := (float64(in.CreditScore)/maxCreditScore)*creditScoreWeight*100 +
		repaymentScore*repaymentWeight +
		(100-normalizedLoanIncome)*loanIncomeRatioWeight

	return clampRound(score)
}

// RepaymentScore is the share of paid installments scaled to 0..100.
func RepaymentScore(history []int) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, v := range history {
		sum += v
	}
	return float64(sum) / float64(len(history)) * 100
}

// NormalizedLoanIncome is the loan-income ratio in percent, capped at 100.
func NormalizedLoanIncome(outstandingLoans, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		if outstandingLoans > 0 {
			return 100
		}
		return 0
	}
	ratio := (outstandingLoans / monthlyIncome) * 100
	return math.Min(100, ratio)
}

func clampRound(score float64) int {
	if math.IsNaN(score) {
		return MinScore
	}
	clamped := math.Max(MinScore, math.Min(MaxScore, score))
	return int(math.Round(clamped))
}

func IsHighRisk(score int) bool {
	return score > HighRiskThreshold
}

func BandFor(score int) Band {
	switch {
	case score > HighRiskThreshold:
		return BandHigh
	case score > MediumRiskThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Bucket returns the lower bound of the distribution bucket for score.
// A perfect score of 100 opens its own "100-120" bucket.
func Bucket(score int) int {
	return (score / BucketWidth) * BucketWidth
}

func BucketLabel(lower int) string {
	return fmt.Sprintf("%d-%d", lower, lower+BucketWidth)
}
