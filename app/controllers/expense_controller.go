package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/ledger"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

type ExpenseController struct {
	expenses repository.ExpenseRepository
}

func NewExpenseController(expenses repository.ExpenseRepository) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

type expenseRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Category string     `json:"category" validate:"required,max=100"`
	Amount   int64      `json:"amount" validate:"required,gt=0"`
	Note     string     `json:"note" validate:"max=2000"`
	SpentAt  *time.Time `json:"spentAt"`
}

func (ec *ExpenseController) HandleList(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, err.Error())
	}
	expenses, err := ec.expenses.ListByUser(usercontext.GetUserID(c), period)
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, ledger.GroupByDay(expenses, time.UTC), "")
}

func (ec *ExpenseController) HandleCreate(c *fiber.Ctx) error {
	var req expenseRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	expense := &models.Expense{
		UserID:   usercontext.GetUserID(c),
		Title:    strings.TrimSpace(req.Title),
		Category: strings.ToLower(strings.TrimSpace(req.Category)),
		Amount:   req.Amount,
		Note:     strings.TrimSpace(req.Note),
		SpentAt:  occurredOrNow(req.SpentAt),
	}
	if err := ec.expenses.Create(expense); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusCreated, expense, "expense recorded")
}

func (ec *ExpenseController) HandleDelete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "invalid id")
	}
	err := ec.expenses.DeleteForUser(usercontext.GetUserID(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "expense not found")
	}
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, nil, "expense deleted")
}

// HandleAnalytics returns expense totals per category
func (ec *ExpenseController) HandleAnalytics(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, err.Error())
	}
	totals, err := ec.expenses.TotalsByCategory(usercontext.GetUserID(c), period)
	if err != nil {
		return InternalError(c, err)
	}

	var sum int64
	for _, t := range totals {
		sum += t.Total
	}
	if totals == nil {
		totals = []repository.CategoryTotal{}
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"categories": totals, "total": sum}, "")
}
