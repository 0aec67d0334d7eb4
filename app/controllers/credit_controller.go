package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// CreditController tracks customers who buy on credit
type CreditController struct {
	debtors repository.DebtorRepository
}

func NewCreditController(debtors repository.DebtorRepository) *CreditController {
	return &CreditController{debtors: debtors}
}

type debtorRequest struct {
	Name  string `json:"name" validate:"required,max=150"`
	Phone string `json:"phone" validate:"max=40"`
	Note  string `json:"note" validate:"max=2000"`
}

type creditEntryRequest struct {
	Kind        string     `json:"kind" validate:"required,oneof=credit repayment"`
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	Description string     `json:"description" validate:"max=255"`
	OccurredAt  *time.Time `json:"occurredAt"`
}

func (cc *CreditController) HandleListDebtors(c *fiber.Ctx) error {
	debtors, err := cc.debtors.ListWithBalances(usercontext.GetUserID(c))
	if err != nil {
		return InternalError(c, err)
	}
	if debtors == nil {
		debtors = []repository.DebtorBalance{}
	}
	return JSON(c, fiber.StatusOK, debtors, "")
}

func (cc *CreditController) HandleCreateDebtor(c *fiber.Ctx) error {
	var req debtorRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	debtor := &models.Debtor{
		UserID: usercontext.GetUserID(c),
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Note:   strings.TrimSpace(req.Note),
	}
	if err := cc.debtors.Create(debtor); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusCreated, debtor, "debtor added")
}

func (cc *CreditController) HandleListEntries(c *fiber.Ctx) error {
	debtor, ok, err := cc.ownDebtor(c)
	if !ok {
		return err
	}

	entries, err := cc.debtors.ListEntries(debtor.UserID, debtor.ID)
	if err != nil {
		return InternalError(c, err)
	}
	var balance int64
	for _, e := range entries {
		balance += e.SignedAmount()
	}
	if entries == nil {
		entries = []models.CreditEntry{}
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"debtor": debtor, "entries": entries, "outstanding": balance}, "")
}

// HandleAddEntry records goods given on credit or a repayment
func (cc *CreditController) HandleAddEntry(c *fiber.Ctx) error {
	debtor, ok, err := cc.ownDebtor(c)
	if !ok {
		return err
	}

	var req creditEntryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	entry := &models.CreditEntry{
		DebtorID:    debtor.ID,
		UserID:      debtor.UserID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		OccurredAt:  occurredOrNow(req.OccurredAt),
	}
	if err := cc.debtors.AddEntry(entry); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusCreated, entry, "entry recorded")
}

func (cc *CreditController) HandleReport(c *fiber.Ctx) error {
	report, err := cc.debtors.Report(usercontext.GetUserID(c))
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, report, "")
}

// ownDebtor loads the :id debtor of the caller. Debtors of other users are
// reported as missing.
func (cc *CreditController) ownDebtor(c *fiber.Ctx) (*models.Debtor, bool, error) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false, Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "invalid id")
	}
	debtor, err := cc.debtors.GetForUser(usercontext.GetUserID(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, Error(c, fiber.StatusNotFound, ErrCodeNotFound, "debtor not found")
	}
	if err != nil {
		return nil, false, InternalError(c, err)
	}
	return debtor, true, nil
}
