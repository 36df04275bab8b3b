package hubapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/knowledgehub/knowledgehub/auth"
	"github.com/knowledgehub/knowledgehub/policy"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

const localsActor = "actor"

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginUser struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type loginRes struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// registerAuth wires the registration and login handlers.
func registerAuth(r fiber.Router, users model.UsersStore, tokens *auth.TokenIssuer) {
	g := r.Group("/auth")

	g.Post(
		"/register", func(c *fiber.Ctx) error {
			var req credentialsReq
			if err := c.BodyParser(&req); err != nil {
				return sendError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
			if _, err := users.Create(req.Username, req.Password, req.Role); err != nil {
				return respondError(c, err, "Registration failed")
			}
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
		},
	)

	g.Post(
		"/login", func(c *fiber.Ctx) error {
			var req credentialsReq
			if err := c.BodyParser(&req); err != nil {
				return sendError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
			u, err := users.Authenticate(req.Username, req.Password)
			if err != nil {
				var authErr model.AuthenticationError
				if errors.As(err, &authErr) {
					return sendError(c, fiber.StatusBadRequest, msgInvalidCredentials)
				}
				return respondError(c, err, "Login failed")
			}
			token, err := tokens.Issue(*u)
			if err != nil {
				return respondError(c, err, "Login failed")
			}
			return c.JSON(
				loginRes{
					Token: token,
					User: loginUser{
						ID:       u.ID,
						Username: u.Username,
						Role:     u.Role,
					},
				},
			)
		},
	)
}

// bearerMiddleware verifies the bearer token and stores the resulting
// model.Actor in the request locals.
func bearerMiddleware(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) || len(header) == len(prefix) {
			return sendError(c, fiber.StatusUnauthorized, msgNoToken)
		}
		actor, err := tokens.Verify(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			return sendError(c, fiber.StatusUnauthorized, msgInvalidToken)
		}
		c.Locals(localsActor, *actor)
		return c.Next()
	}
}

// requireAdmin rejects actors that are not administrators. It must run after
// bearerMiddleware.
func requireAdmin(c *fiber.Ctx) error {
	if !policy.IsAdmin(actorFromCtx(c)) {
		return sendError(c, fiber.StatusForbidden, msgAccessDenied)
	}
	return c.Next()
}

func actorFromCtx(c *fiber.Ctx) model.Actor {
	actor, _ := c.Locals(localsActor).(model.Actor)
	return actor
}
