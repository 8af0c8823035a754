package controllers

import (
	"net/http"

	"spendly-be/internal/models"
	"spendly-be/internal/service"

	"github.com/gin-gonic/gin"
)

type BudgetController struct {
	budgetService service.BudgetService
}

func NewBudgetController(budgetService service.BudgetService) *BudgetController {
	return &BudgetController{budgetService: budgetService}
}

// List handles GET /api/v1/budgets
func (bc *BudgetController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pagination(c)
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	budgets, err := bc.budgetService.ListBudgets(userID, activeOnly, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// Get handles GET /api/v1/budgets/:id
func (bc *BudgetController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	budget, err := bc.budgetService.GetBudget(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// Create handles POST /api/v1/budgets
func (bc *BudgetController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	budget, err := bc.budgetService.CreateBudget(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// Update handles PUT /api/v1/budgets/:id
func (bc *BudgetController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	budget, err := bc.budgetService.UpdateBudget(c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// Delete handles DELETE /api/v1/budgets/:id
func (bc *BudgetController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := bc.budgetService.DeleteBudget(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget deleted successfully",
	})
}

// Progress handles GET /api/v1/budgets/:id/progress
func (bc *BudgetController) Progress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progress, err := bc.budgetService.GetProgress(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// AllProgress handles GET /api/v1/budgets/progress
func (bc *BudgetController) AllProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	progress, err := bc.budgetService.GetAllProgress(userID, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
