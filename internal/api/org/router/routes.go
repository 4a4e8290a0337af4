// Package router đăng ký các route thuộc domain Org: tag, role, employee, policy.
// Cả bốn entity đều đi qua handler vòng đời generic.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "ops_console/internal/api/base/handler"
	orgdto "ops_console/internal/api/org/dto"
	orgmodels "ops_console/internal/api/org/models"
	orgsvc "ops_console/internal/api/org/service"
	apirouter "ops_console/internal/api/router"
)

// Register đăng ký tất cả route Org lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	tagService, err := orgsvc.NewOrgTagService()
	if err != nil {
		return fmt.Errorf("tạo tag service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/org/tags",
		basehdl.NewLifecycleHandler[orgmodels.OrgTag, orgdto.OrgTagCreateInput](
			tagService, "org_tag", orgsvc.BuildTag), nil)

	roleService, err := orgsvc.NewOrgRoleService()
	if err != nil {
		return fmt.Errorf("tạo role service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/org/roles",
		basehdl.NewLifecycleHandler[orgmodels.OrgRole, orgdto.OrgRoleCreateInput](
			roleService, "org_role", orgsvc.BuildRole), nil)

	employeeService, err := orgsvc.NewOrgEmployeeService()
	if err != nil {
		return fmt.Errorf("tạo employee service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/org/employees",
		basehdl.NewLifecycleHandler[orgmodels.OrgEmployee, orgdto.OrgEmployeeCreateInput](
			employeeService, "org_employee", orgsvc.BuildEmployee), nil)

	policyService, err := orgsvc.NewOrgPolicyService()
	if err != nil {
		return fmt.Errorf("tạo policy service: %w", err)
	}
	r.RegisterLifecycleRoutes(v1, "/org/policies",
		basehdl.NewLifecycleHandler[orgmodels.OrgPolicy, orgdto.OrgPolicyCreateInput](
			policyService, "org_policy", orgsvc.BuildPolicy), nil)

	return nil
}
