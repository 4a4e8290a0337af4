// Package middleware chứa các middleware dùng chung cho API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Các key lưu thông tin người thao tác trong request context
const (
	LocalActorName  = "actor_name"
	LocalActorEmail = "actor_email"
)

// ActorContext chuẩn hóa thông tin người thao tác do console gửi kèm header
// (X-Actor-Name, X-Actor-Email) và lưu vào Locals để audit log sử dụng.
// Console không có đăng nhập riêng nên actor là self-reported, chỉ dùng
// để đối soát chứ không dùng để phân quyền.
func ActorContext() fiber.Handler {
	return func(c fiber.Ctx) error {
		name := strings.TrimSpace(c.Get("X-Actor-Name"))
		email := strings.TrimSpace(strings.ToLower(c.Get("X-Actor-Email")))

		// Ghi lại header đã chuẩn hóa để các layer sau đọc thống nhất
		c.Request().Header.Set("X-Actor-Name", name)
		c.Request().Header.Set("X-Actor-Email", email)

		c.Locals(LocalActorName, name)
		c.Locals(LocalActorEmail, email)
		return c.Next()
	}
}
