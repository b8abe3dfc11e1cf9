package accounting

import (
	"sort"
	"time"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"
)

const (
	dateKeyLayout   = "2006-01-02"
	dateLabelLayout = "January 2, 2006"
)

// CalculateTotals partitions transactions by type and sums each side.
// An empty list yields all zeros.
func CalculateTotals(transactions []domain.Transaction) domain.Totals {
	var totals domain.Totals
	for _, txn := range transactions {
		switch txn.Type {
		case domain.CashIn:
			totals.InCents += txn.AmountCents
		case domain.CashOut:
			totals.OutCents += txn.AmountCents
		}
	}
	totals.NetCents = totals.OutCents - totals.InCents
	return totals
}

// CalculateRunningNet returns the running net after each transaction,
// newest first, so index 0 holds the net after the most recent transaction.
//
// Transactions are stable-sorted ascending by OccurredAt, accumulated in that
// order, and the result reversed. Entries with equal timestamps are counted
// in input order. NewestFirst returns the transactions in the matching order.
func CalculateRunningNet(transactions []domain.Transaction) []int64 {
	order := chronologicalOrder(transactions)
	running := make([]int64, len(order))
	var sum int64
	for i, idx := range order {
		sum += transactions[idx].SignedCents()
		running[len(order)-1-i] = sum
	}
	return running
}

// NewestFirst returns the transactions ordered the way CalculateRunningNet
// reports them, so the two slices can be zipped by index.
func NewestFirst(transactions []domain.Transaction) []domain.Transaction {
	order := chronologicalOrder(transactions)
	sorted := make([]domain.Transaction, len(order))
	for i, idx := range order {
		sorted[len(order)-1-i] = transactions[idx]
	}
	return sorted
}

// chronologicalOrder returns input indices sorted oldest first; ties keep
// their input order.
func chronologicalOrder(transactions []domain.Transaction) []int {
	order := make([]int, len(transactions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return transactions[order[a]].OccurredAt.Before(transactions[order[b]].OccurredAt)
	})
	return order
}

// GroupByLocalDate buckets items by the calendar date of their timestamp in
// loc. Groups are ordered newest date first; items keep their input order.
func GroupByLocalDate[T any](items []T, timestamp func(T) time.Time, loc *time.Location) []domain.DateGroup[T] {
	if loc == nil {
		loc = time.Local
	}
	index := make(map[string]int)
	groups := []domain.DateGroup[T]{}
	for _, item := range items {
		local := timestamp(item).In(loc)
		key := local.Format(dateKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.DateGroup[T]{
				DateKey: key,
				Label:   local.Format(dateLabelLayout),
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].DateKey > groups[b].DateKey
	})
	return groups
}

// CalculateDailyTotals aggregates transactions per local calendar day, newest day first.
func CalculateDailyTotals(transactions []domain.Transaction, loc *time.Location) []domain.DailyTotal {
	groups := GroupByLocalDate(transactions, func(t domain.Transaction) time.Time { return t.OccurredAt }, loc)
	daily := make([]domain.DailyTotal, len(groups))
	for i, g := range groups {
		daily[i] = domain.DailyTotal{
			DateKey: g.DateKey,
			Label:   g.Label,
			Totals:  CalculateTotals(g.Items),
		}
	}
	return daily
}

// CalculateLoss returns how much more was cashed in than out, floored at zero.
func CalculateLoss(totalInCents, totalOutCents int64) int64 {
	return max(0, totalInCents-totalOutCents)
}

// CalculateBudgetRemaining returns the part of the budget not yet lost.
// It is nil when no budget is set and never negative otherwise.
func CalculateBudgetRemaining(budgetCents *int64, totalInCents, totalOutCents int64) *int64 {
	if budgetCents == nil {
		return nil
	}
	remaining := max(0, *budgetCents-CalculateLoss(totalInCents, totalOutCents))
	return &remaining
}
