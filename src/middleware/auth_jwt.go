package middleware

import (
	"context"
	"strings"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalPayload = "payload"
	LocalToken   = "token"
	LocalUserID  = "userId"
	LocalEmail   = "email"
	LocalRole    = "role"
)

// Blacklist reports revoked access tokens; *utils.TokenStore satisfies it.
type Blacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthJWT verifies the bearer access token. Every rejection answers 401 with
// the same message.
func AuthJWT(jwt *utils.JWTManager, blacklist Blacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.HandleError(c, fiber.StatusUnauthorized, constants.MsgUnauthorized)
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := jwt.ParseJWT(tokenStr, utils.AccessToken)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Path()).Msg("rejected access token")
			return utils.HandleError(c, fiber.StatusUnauthorized, constants.MsgUnauthorized)
		}

		if blacklist != nil {
			revoked, err := blacklist.IsTokenBlacklisted(c.UserContext(), tokenStr)
			if err != nil {
				logger.Error().Err(err).Msg("blacklist lookup failed")
				return utils.HandleError(c, fiber.StatusInternalServerError, constants.MsgInternalError)
			}
			if revoked {
				return utils.HandleError(c, fiber.StatusUnauthorized, constants.MsgUnauthorized)
			}
		}

		c.Locals(LocalPayload, claims)
		c.Locals(LocalToken, tokenStr)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequireRole must run after AuthJWT.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				return c.Next()
			}
		}
		return utils.HandleError(c, fiber.StatusForbidden, constants.MsgForbidden)
	}
}

// Claims returns the verified token payload, nil on public routes.
func Claims(c *fiber.Ctx) *utils.JWTClaims {
	claims, _ := c.Locals(LocalPayload).(*utils.JWTClaims)
	return claims
}

// Actor describes the caller for audit stamping and permission checks.
func Actor(c *fiber.Ctx) models.Actor {
	claims := Claims(c)
	if claims == nil {
		return models.Actor{}
	}
	return models.Actor{ID: claims.UserID, Email: claims.Email, Role: models.Role(claims.Role)}
}

// Token returns the raw bearer token accepted by AuthJWT.
func Token(c *fiber.Ctx) string {
	tok, _ := c.Locals(LocalToken).(string)
	return tok
}
