package router

import (
	"github.com/gofiber/fiber/v3"
)

// LifecycleRouteHandler là tập route chuẩn của một entity có vòng đời.
type LifecycleRouteHandler interface {
	List(c fiber.Ctx) error
	GetById(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Patch(c fiber.Ctx) error
	Archive(c fiber.Ctx) error
	Unarchive(c fiber.Ctx) error
	Remove(c fiber.Ctx) error
	Restore(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() method.
// LƯU Ý Fiber v3: truyền middleware trực tiếp vào router.Get(path, mw, handler)
// khiến middleware KHÔNG được gọi — phải đăng ký qua group.Use() như dưới đây.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterLifecycleRoutes đăng ký tập route chuẩn cho một entity có vòng đời:
//
//	GET    /              danh sách theo trạng thái (?state=active|archived|removed)
//	GET    /:id           chi tiết một bản ghi
//	POST   /              tạo mới
//	PATCH  /:id           patch tri-state
//	POST   /:id/archive   lưu trữ
//	POST   /:id/unarchive bỏ lưu trữ
//	POST   /:id/remove    chuyển vào thùng rác
//	POST   /:id/restore   khôi phục về Active
//	DELETE /:id           xóa cứng
func (r *Router) RegisterLifecycleRoutes(router fiber.Router, prefix string, h LifecycleRouteHandler, middlewares []fiber.Handler) {
	RegisterRouteWithMiddleware(router, prefix, "GET", "/", middlewares, h.List)
	RegisterRouteWithMiddleware(router, prefix, "GET", "/:id", middlewares, h.GetById)
	RegisterRouteWithMiddleware(router, prefix, "POST", "/", middlewares, h.Create)
	RegisterRouteWithMiddleware(router, prefix, "PATCH", "/:id", middlewares, h.Patch)
	RegisterRouteWithMiddleware(router, prefix, "POST", "/:id/archive", middlewares, h.Archive)
	RegisterRouteWithMiddleware(router, prefix, "POST", "/:id/unarchive", middlewares, h.Unarchive)
	RegisterRouteWithMiddleware(router, prefix, "POST", "/:id/remove", middlewares, h.Remove)
	RegisterRouteWithMiddleware(router, prefix, "POST", "/:id/restore", middlewares, h.Restore)
	RegisterRouteWithMiddleware(router, prefix, "DELETE", "/:id", middlewares, h.Delete)
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt
// Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
