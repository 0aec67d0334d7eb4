package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/geo"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/session"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/usercontext"
)

// AuthController handles registration and the login session
type AuthController struct {
	users    repository.UserRepository
	resolver *geo.Resolver
}

func NewAuthController(users repository.UserRepository, resolver *geo.Resolver) *AuthController {
	return &AuthController{users: users, resolver: resolver}
}

type registerRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=150"`
	Email        string `json:"email" validate:"required,email,max=200"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	BusinessName string `json:"businessName" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=40"`
	CountryCode  string `json:"countryCode" validate:"max=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates an account and logs it in
func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	country := geo.Normalize(req.CountryCode)
	switch {
	case country == "":
		country = ac.resolver.Resolve(c.UserContext(), GetClientIP(c))
	case !geo.IsSupported(country):
		return Error(c, fiber.StatusBadRequest, ErrCodeBadRequest, "unsupported countryCode")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return validationError(c, err)
	}
	user.BusinessName = strings.TrimSpace(req.BusinessName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.CountryCode = country

	if _, err := ac.users.GetByEmail(user.Email); err == nil {
		return Error(c, fiber.StatusConflict, ErrCodeConflict, "email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return InternalError(c, err)
	}

	if err := ac.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Error(c, fiber.StatusConflict, ErrCodeConflict, "email is already registered")
		}
		return InternalError(c, err)
	}

	if err := startSession(c, user); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusCreated, user, "account created")
}

// HandleLogin checks the credentials and starts a session. Unknown emails
// and wrong passwords get the same answer.
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	user, err := ac.users.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return InternalError(c, err)
	}
	if user == nil || !user.CheckPassword(req.Password) {
		return Error(c, fiber.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
	}

	if err := startSession(c, user); err != nil {
		return InternalError(c, err)
	}
	if err := ac.users.TouchLastLogin(user.ID, nowUTC()); err != nil {
		log.Warnf("[Auth] could not record login of user %d: %v", user.ID, err)
	}
	return JSON(c, fiber.StatusOK, user, "logged in")
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return InternalError(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return InternalError(c, err)
	}
	return JSON(c, fiber.StatusOK, nil, "logged out")
}

func startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyCountryCode, user.CountryCode)
	return sess.Save()
}
