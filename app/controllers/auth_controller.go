package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/database"
	"github.com/campuscare-app/CampusCare/internal/pkg/env"
	"github.com/campuscare-app/CampusCare/internal/pkg/mail"
	"github.com/campuscare-app/CampusCare/internal/pkg/session"
	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates an account. The configured ADMIN_EMAIL is
// promoted to the administrator role on registration; every other account
// starts as a plain user.
func HandleAuthRegister(c *fiber.Ctx) error {
	if database.GetDB() == nil {
		return storeErrorResponse(c, repository.NewStoreError(repository.KindConfig, nil))
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if adminEmail := env.GetEnv("ADMIN_EMAIL", ""); adminEmail != "" && req.Email == adminEmail {
		user.Role = models.ROLE_ADMIN
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
	}

	// the unique index is the authority; the pre-check above only gives a
	// friendlier message for the common case
	if err := repo.Create(user); err != nil {
		if repository.KindOf(err) == repository.KindConflict {
			return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
		}
		return storeErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func HandleAuthLogin(c *fiber.Ctx) error {
	if database.GetDB() == nil {
		return storeErrorResponse(c, repository.NewStoreError(repository.KindConfig, nil))
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	// notice: do not inform the caller which part of the login failed
	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", fmt.Sprintf("something went wrong: %s", err))
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyUserEmail, user.Email)
	sess.Set(usercontext.KeyIsAdmin, user.IsAdmin())

	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", fmt.Sprintf("something went wrong: %s", err))
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		log.Warnf("[Auth] failed to record login time for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"is_admin": user.IsAdmin(),
	})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to load session")
	}

	if err := sess.Destroy(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to destroy session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type resetRequest struct {
	Email string `json:"email"`
}

// HandleAuthResetPassword issues a reset token by email. The response is
// the same whether or not the account exists, so the endpoint cannot be
// used to probe for accounts.
func HandleAuthResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err == nil {
		if err := user.GenerateResetToken(); err == nil {
			if err := repo.Update(user); err == nil {
				appURL := env.GetEnv("APP_PUBLIC_URL", "http://localhost:4000")
				body := fmt.Sprintf(
					"<p>Hello %s,</p><p>Use the link below to reset your password:</p><p><a href=\"%s/reset-password?token=%s\">Reset password</a></p>",
					user.Name, appURL, user.ResetToken,
				)
				if mailErr := mail.SendMail(user.Email, "Reset your password", body); mailErr != nil {
					log.Warnf("[Auth] reset mail to %s failed: %v", user.Email, mailErr)
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "If that account exists, a reset link has been sent.",
	})
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func HandleAuthResetPasswordConfirm(c *fiber.Ctx) error {
	var req resetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Token == "" || len(req.Password) < 6 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "token and a password of at least 6 characters are required")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByResetToken(req.Token)
	if err != nil || !user.IsResetTokenValid(req.Token) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_token", "the reset token is invalid or expired")
	}

	if err := user.SetPassword(req.Password); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "failed to set password")
	}
	user.ClearResetToken()

	if err := repo.Update(user); err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}

// HandleGetProfile returns the authenticated user's profile.
func HandleGetProfile(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uctx.UserID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(user)
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// HandleUpdateProfile updates the display name of the authenticated user.
func HandleUpdateProfile(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if len(req.Name) < 3 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "name must be at least 3 characters")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uctx.UserID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	user.Name = req.Name
	if err := repo.Update(user); err != nil {
		return storeErrorResponse(c, err)
	}

	// keep the session display name in sync
	if sess, err := session.GetSessionStore().Get(c); err == nil {
		sess.Set(usercontext.KeyUsername, user.Name)
		if err := sess.Save(); err != nil {
			log.Warnf("[Auth] failed to refresh session name: %v", err)
		}
	}

	return c.JSON(user)
}
