package serverutils

import (
	"strings"

	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewJwtMiddleware verifies HS256 bearer tokens signed with secret, loads the
// token's user and exposes the user_id and username claims as locals.
// Deleted users get 401, deactivated users 400.
func NewJwtMiddleware(secret string, uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Could not validate credentials"))
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Could not validate credentials"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}
		userID, _ := claims["user_id"].(string)
		username, _ := claims["sub"].(string)
		id, err := uuid.Parse(userID)
		if err != nil || username == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Could not validate credentials"))
		}

		user, err := uowFactory.NewUnitOfWork(ctx.UserContext()).UserRepository().FindOne(ctx.UserContext(), specification.ByID{ID: id})
		if err != nil {
			return err
		}
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Could not validate credentials"))
		}
		if !user.IsActive {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, "Inactive user"))
		}

		ctx.Locals("user_id", userID)
		ctx.Locals("username", username)
		return ctx.Next()
	}
}
