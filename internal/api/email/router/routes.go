// Package router đăng ký các route thuộc domain Email: template và biến nội suy.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "ops_console/internal/api/base/handler"
	emaildto "ops_console/internal/api/email/dto"
	emailmodels "ops_console/internal/api/email/models"
	emailsvc "ops_console/internal/api/email/service"
	apirouter "ops_console/internal/api/router"
)

// Register đăng ký tất cả route Email lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	templateService, err := emailsvc.NewEmailTemplateService()
	if err != nil {
		return fmt.Errorf("tạo template service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/email/templates",
		basehdl.NewLifecycleHandler[emailmodels.EmailTemplate, emaildto.EmailTemplateCreateInput](
			templateService, "email_template", emailsvc.BuildTemplate), nil)

	variableService, err := emailsvc.NewEmailVariableService()
	if err != nil {
		return fmt.Errorf("tạo variable service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/email/variables",
		basehdl.NewLifecycleHandler[emailmodels.EmailVariable, emaildto.EmailVariableCreateInput](
			variableService, "email_variable", emailsvc.BuildVariable), nil)

	return nil
}
