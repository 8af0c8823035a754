package service

import (
	"sort"
	"time"

	"spendly-be/internal/entities"
	"spendly-be/internal/models"
)

// This file is the aggregation core: budget progress and expense summary
// views are derived here, in memory, from the owner's expense set. The
// repositories hand over records; all date/category filtering and grouping
// semantics live in one place. Nothing computed here is ever persisted or
// cached - every call recomputes from current data.

// filterExpensesByDate keeps expenses whose date falls within the optional
// inclusive bounds
func filterExpensesByDate(expenses []*entities.Expense, start, end *time.Time) []*entities.Expense {
	if start == nil && end == nil {
		return expenses
	}
	var matched []*entities.Expense
	for _, e := range expenses {
		if start != nil && e.Date.Before(*start) {
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// computeStats builds the statistics tuple shared by all summary views.
// An empty set yields zero total/count/average and nil min/max rather than
// an error.
func computeStats(amounts []float64) models.ExpenseSummary {
	if len(amounts) == 0 {
		return models.ExpenseSummary{}
	}

	var total float64
	min, max := amounts[0], amounts[0]
	for _, a := range amounts {
		total += a
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}

	return models.ExpenseSummary{
		Total:   total,
		Count:   len(amounts),
		Average: total / float64(len(amounts)),
		Min:     &min,
		Max:     &max,
	}
}

// computeProgress derives the spend-vs-cap view for one budget from the
// owner's full expense set. It applies the budget's date window (inclusive
// on both ends) and, for category-scoped budgets, the category filter
// itself - callers must not pre-filter.
func computeProgress(budget *entities.Budget, expenses []*entities.Expense, categoryName *string) *models.BudgetProgress {
	var spent float64
	for _, e := range expenses {
		if e.Date.Before(budget.StartDate) || e.Date.After(budget.EndDate) {
			continue
		}
		if budget.CategoryID != nil && e.CategoryID != *budget.CategoryID {
			continue
		}
		spent += e.Amount
	}

	// Amount is validated > 0 at creation; the guard only protects against
	// bad data reaching the calculator.
	percentageUsed := 0.0
	if budget.Amount > 0 {
		percentageUsed = (spent / budget.Amount) * 100
	}

	return &models.BudgetProgress{
		BudgetID:        budget.ID,
		BudgetName:      budget.Name,
		BudgetAmount:    budget.Amount,
		SpentAmount:     spent,
		RemainingAmount: budget.Amount - spent,
		PercentageUsed:  percentageUsed,
		StartDate:       budget.StartDate,
		EndDate:         budget.EndDate,
		CategoryID:      budget.CategoryID,
		CategoryName:    categoryName,
		IsExceeded:      spent > budget.Amount, // spending exactly the cap is not exceeded
	}
}

// groupByCategory builds one statistics tuple per category with at least one
// matching expense, ordered by descending total spend (ties stable by
// category id). Categories with no matches in range are omitted entirely.
func groupByCategory(expenses []*entities.Expense, nameFor func(categoryID string) string) []models.CategoryExpenseSummary {
	amounts := make(map[string][]float64)
	for _, e := range expenses {
		amounts[e.CategoryID] = append(amounts[e.CategoryID], e.Amount)
	}

	summaries := make([]models.CategoryExpenseSummary, 0, len(amounts))
	for categoryID, categoryAmounts := range amounts {
		summaries = append(summaries, models.CategoryExpenseSummary{
			CategoryID:     categoryID,
			CategoryName:   nameFor(categoryID),
			ExpenseSummary: computeStats(categoryAmounts),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].CategoryID < summaries[j].CategoryID
	})
	return summaries
}

// groupByMonth builds one statistics tuple per calendar year+month with at
// least one expense, labeled "YYYY-MM", ascending by year then month.
func groupByMonth(expenses []*entities.Expense) []models.TimePeriodExpenseSummary {
	type yearMonth struct {
		year  int
		month time.Month
	}

	amounts := make(map[yearMonth][]float64)
	for _, e := range expenses {
		key := yearMonth{year: e.Date.Year(), month: e.Date.Month()}
		amounts[key] = append(amounts[key], e.Amount)
	}

	keys := make([]yearMonth, 0, len(amounts))
	for key := range amounts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	summaries := make([]models.TimePeriodExpenseSummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, models.TimePeriodExpenseSummary{
			Period:         time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			ExpenseSummary: computeStats(amounts[key]),
		})
	}
	return summaries
}
