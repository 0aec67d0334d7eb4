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

type SaleController struct {
	sales repository.SaleRepository
}

func NewSaleController(sales repository.SaleRepository) *SaleController {
	return &SaleController{sales: sales}
}

type saleRequest struct {
	Item         string     `json:"item" validate:"required,max=200"`
	Quantity     int        `json:"quantity" validate:"required,gt=0"`
	UnitPrice    int64      `json:"unitPrice" validate:"gte=0"`
	CustomerName string     `json:"customerName" validate:"max=150"`
	SoldAt       *time.Time `json:"soldAt"`
}

// HandleList returns the caller's sales grouped by day
func (sc *SaleController) HandleList(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, err.Error())
	}
	sales, err := sc.sales.ListByUser(usercontext.GetUserID(c), period)
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, ledger.GroupByDay(sales, time.UTC), "")
}

func (sc *SaleController) HandleCreate(c *fiber.Ctx) error {
	var req saleRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	sale := &models.Sale{
		UserID:       usercontext.GetUserID(c),
		Item:         strings.TrimSpace(req.Item),
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Amount:       int64(req.Quantity) * req.UnitPrice,
		CustomerName: strings.TrimSpace(req.CustomerName),
		SoldAt:       occurredOrNow(req.SoldAt),
	}
	if err := sc.sales.Create(sale); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusCreated, sale, "sale recorded")
}

func (sc *SaleController) HandleDelete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "invalid id")
	}
	err := sc.sales.DeleteForUser(usercontext.GetUserID(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "sale not found")
	}
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, nil, "sale deleted")
}
