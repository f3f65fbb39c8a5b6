package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/services"
)

func (handler *Handler) AdminListUsers(c *fiber.Ctx) error {
	accounts, err := handler.accounts.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(fiber.Map{"success": true, "users": accounts})
}

func (handler *Handler) AdminCreateUser(c *fiber.Ctx) error {
	input := adminUserInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := handler.accounts.CreateAccount(input.Username, input.Password, input.FullName, input.Nickname, input.Role)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "a user with this email already exists")
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordRejected):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to save user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": account})
}

func (handler *Handler) AdminUpdateUser(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	input := adminUserInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := handler.accounts.UpdateAccount(uint(accountID), input.Username, input.Password, input.FullName, input.Nickname)
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "a user with this email already exists")
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordRejected):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to save user")
	}
	return c.JSON(fiber.Map{"success": true, "user": account})
}

func (handler *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID < 1 {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	admin, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if admin.ID == uint(accountID) {
		return apiError(c, fiber.StatusBadRequest, "cannot delete your own account")
	}

	err = handler.accounts.DeleteAccount(uint(accountID))
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to delete user")
	}
	return c.JSON(fiber.Map{"success": true})
}
