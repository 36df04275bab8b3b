package hubapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

// registerUsers wires the admin-only user listing.
func registerUsers(r fiber.Router, users model.UsersStore, bearer fiber.Handler) {
	r.Get(
		"/users", bearer, requireAdmin, func(c *fiber.Ctx) error {
			list, err := users.List()
			if err != nil {
				return respondError(c, err, "Failed to fetch users")
			}
			if list == nil {
				list = []model.User{}
			}
			return c.JSON(list)
		},
	)
}
