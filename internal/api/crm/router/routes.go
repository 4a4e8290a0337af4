// Package router đăng ký các route thuộc domain CRM: bản ghi customer/vendor,
// ghi chú, gộp bản ghi trùng và contact nhúng trong vendor.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "ops_console/internal/api/crm/handler"
	apirouter "ops_console/internal/api/router"
)

// Register đăng ký tất cả route CRM lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	accountHandler, err := crmhdl.NewCrmAccountHandler()
	if err != nil {
		return fmt.Errorf("tạo CRM account handler: %w", err)
	}
	mergeHandler := crmhdl.NewMergeHandler(accountHandler.Service())
	contactHandler := crmhdl.NewContactHandler(accountHandler.Service())

	// Vòng đời + CRUD chuẩn của bản ghi CRM
	r.RegisterLifecycleRoutes(v1, "/crm/accounts", accountHandler, nil)

	// Ghi chú của account
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/accounts", "POST", "/:id/notes", nil, accountHandler.AddNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/accounts", "PUT", "/:id/notes/:noteId", nil, accountHandler.UpdateNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/accounts", "DELETE", "/:id/notes/:noteId", nil, accountHandler.RemoveNote)

	// Luồng gộp bản ghi trùng
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/merge", "POST", "/toggle", nil, mergeHandler.Toggle)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/merge", "GET", "/groups", nil, mergeHandler.Groups)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/merge", "POST", "/preview", nil, mergeHandler.Preview)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/merge", "POST", "/commit", nil, mergeHandler.Commit)

	// Contact nhúng trong vendor
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/accounts", "POST", "/:id/contacts", nil, contactHandler.AddContact)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "PUT", "/:contactId", nil, contactHandler.UpdateContact)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "PUT", "/:contactId/do-not-contact", nil, contactHandler.SetDoNotContact)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "POST", "/:contactId/archive", nil, contactHandler.Archive)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "POST", "/:contactId/unarchive", nil, contactHandler.Unarchive)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "POST", "/:contactId/remove", nil, contactHandler.Remove)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "POST", "/:contactId/restore", nil, contactHandler.Restore)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "DELETE", "/:contactId", nil, contactHandler.Delete)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "POST", "/:contactId/notes", nil, contactHandler.AddNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "PUT", "/:contactId/notes/:noteId", nil, contactHandler.UpdateNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm/contacts", "DELETE", "/:contactId/notes/:noteId", nil, contactHandler.RemoveNote)

	return nil
}
