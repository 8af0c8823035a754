package controllers

import (
	"net/http"
	"strconv"

	"spendly-be/internal/models"
	"spendly-be/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpenseController struct {
	expenseService service.ExpenseService
}

func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

// List handles GET /api/v1/expenses
func (ec *ExpenseController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pagination(c)

	var filter models.ExpenseFilter
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	var err error
	if filter.StartDate, err = dateQuery(c, "start_date"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	if filter.EndDate, err = dateQuery(c, "end_date"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	expenses, err := ec.expenseService.ListExpenses(userID, filter, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Get handles GET /api/v1/expenses/:id
func (ec *ExpenseController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	expense, err := ec.expenseService.GetExpense(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Create handles POST /api/v1/expenses
func (ec *ExpenseController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	expense, err := ec.expenseService.CreateExpense(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// Update handles PUT /api/v1/expenses/:id
func (ec *ExpenseController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	expense, err := ec.expenseService.UpdateExpense(c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /api/v1/expenses/:id
func (ec *ExpenseController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ec.expenseService.DeleteExpense(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense deleted successfully",
	})
}

// Summary handles GET /api/v1/expenses/summary
func (ec *ExpenseController) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, err := dateQuery(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	end, err := dateQuery(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	summary, err := ec.expenseService.Summary(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ByCategory handles GET /api/v1/expenses/by-category
func (ec *ExpenseController) ByCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, err := dateQuery(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	end, err := dateQuery(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	summaries, err := ec.expenseService.ByCategory(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// Monthly handles GET /api/v1/expenses/monthly
func (ec *ExpenseController) Monthly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", "12"))
	if err != nil || months < 1 || months > 60 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 60"})
		return
	}

	summaries, err := ec.expenseService.Monthly(userID, months)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}
