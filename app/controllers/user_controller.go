package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/session"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// ProfileController serves the logged-in user's own profile
type ProfileController struct {
	users repository.UserRepository
}

func NewProfileController(users repository.UserRepository) *ProfileController {
	return &ProfileController{users: users}
}

type profileRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=150"`
	BusinessName string `json:"businessName" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=40"`
	CountryCode  string `json:"countryCode" validate:"max=8"`
}

func (pc *ProfileController) HandleGetProfile(c *fiber.Ctx) error {
	user, err := pc.users.GetByID(usercontext.GetUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, user, "")
}

func (pc *ProfileController) HandleUpdateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	country := geo.Normalize(req.CountryCode)
	if country != "" && !geo.IsSupported(country) {
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "unsupported countryCode")
	}

	user, err := pc.users.GetByID(usercontext.GetUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return InternalError(c, err)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.BusinessName = strings.TrimSpace(req.BusinessName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.CountryCode = country
	if err := pc.users.Update(user); err != nil {
		return InternalError(c, err)
	}

	// pricing for later requests follows the new country
	if err := session.SetSessionValue(c, usercontext.KeyCountryCode, user.CountryCode); err != nil {
		log.Warnf("[Profile] could not update session of user %d: %v", user.ID, err)
	}
	if err := session.SetSessionValue(c, usercontext.KeyUsername, user.Name); err != nil {
		log.Warnf("[Profile] could not update session of user %d: %v", user.ID, err)
	}

	return JSON(c, fiber.StatusOK, user, "profile updated")
}
