package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"pulseboard/internal/models"
)

const contextAccountKey = "account"

type authClaims struct {
	AccountID uint   `json:"uid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// authenticateRequest resolves the bearer token to a live account. Tokens
// signed with anything but HMAC are rejected.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.Account, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return models.Account{}, errors.New("missing authorization header")
	}
	scheme, rawToken, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(rawToken) == "" {
		return models.Account{}, errors.New("malformed authorization header")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(rawToken), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return models.Account{}, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return models.Account{}, errors.New("token expired")
	}

	return handler.accounts.FindByID(claims.AccountID)
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	account, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextAccountKey, account)
	return c.Next()
}

func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if account.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}

func currentAccount(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals(contextAccountKey).(models.Account)
	return account, ok
}

func (handler *Handler) buildToken(account models.Account, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		AccountID: account.ID,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(account.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}
