// Package router đăng ký các route thuộc domain Finance: mức thuế.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "ops_console/internal/api/base/handler"
	financedto "ops_console/internal/api/finance/dto"
	financemodels "ops_console/internal/api/finance/models"
	financesvc "ops_console/internal/api/finance/service"
	apirouter "ops_console/internal/api/router"
)

// Register đăng ký tất cả route Finance lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	taxRateService, err := financesvc.NewTaxRateService()
	if err != nil {
		return fmt.Errorf("tạo tax rate service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/finance/tax-rates",
		basehdl.NewLifecycleHandler[financemodels.TaxRate, financedto.TaxRateCreateInput](
			taxRateService, "tax_rate", financesvc.BuildTaxRate), nil)
	return nil
}
