// Package orgsvc - service cho các entity cấu hình tổ chức.
// CRUD và vòng đời dùng nguyên base service; ở đây chỉ có constructor
// lấy collection từ registry và hàm build model từ input.
package orgsvc

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "ops_console/internal/api/base/service"
	orgdto "ops_console/internal/api/org/dto"
	orgmodels "ops_console/internal/api/org/models"
	"ops_console/internal/common"
	"ops_console/internal/global"
)

// OrgTagService xử lý CRUD và vòng đời cho tag.
type OrgTagService struct {
	*basesvc.BaseServiceMongoImpl[orgmodels.OrgTag]
}

// NewOrgTagService tạo OrgTagService mới.
func NewOrgTagService() (*OrgTagService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgTags)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OrgTags, common.ErrNotFound)
	}
	return &OrgTagService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orgmodels.OrgTag](coll)}, nil
}

// BuildTag validate input và dựng model tag — chưa ghi gì vào store.
func BuildTag(input *orgdto.OrgTagCreateInput) (orgmodels.OrgTag, error) {
	var zero orgmodels.OrgTag
	if err := validateNamed(input, &input.Name); err != nil {
		return zero, err
	}
	return orgmodels.OrgTag{
		Name:        input.Name,
		Color:       input.Color,
		Description: input.Description,
	}, nil
}

// OrgRoleService xử lý CRUD và vòng đời cho role.
type OrgRoleService struct {
	*basesvc.BaseServiceMongoImpl[orgmodels.OrgRole]
}

// NewOrgRoleService tạo OrgRoleService mới.
func NewOrgRoleService() (*OrgRoleService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgRoles)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OrgRoles, common.ErrNotFound)
	}
	return &OrgRoleService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orgmodels.OrgRole](coll)}, nil
}

// BuildRole validate input và dựng model role.
func BuildRole(input *orgdto.OrgRoleCreateInput) (orgmodels.OrgRole, error) {
	var zero orgmodels.OrgRole
	if err := validateNamed(input, &input.Name); err != nil {
		return zero, err
	}
	return orgmodels.OrgRole{
		Name:        input.Name,
		Description: input.Description,
	}, nil
}

// OrgEmployeeService xử lý CRUD và vòng đời cho employee.
type OrgEmployeeService struct {
	*basesvc.BaseServiceMongoImpl[orgmodels.OrgEmployee]
}

// NewOrgEmployeeService tạo OrgEmployeeService mới.
func NewOrgEmployeeService() (*OrgEmployeeService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgEmployees)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OrgEmployees, common.ErrNotFound)
	}
	return &OrgEmployeeService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orgmodels.OrgEmployee](coll)}, nil
}

// BuildEmployee validate input và dựng model employee.
func BuildEmployee(input *orgdto.OrgEmployeeCreateInput) (orgmodels.OrgEmployee, error) {
	var zero orgmodels.OrgEmployee
	if err := validateNamed(input, &input.Name); err != nil {
		return zero, err
	}
	doc := orgmodels.OrgEmployee{
		Name:     input.Name,
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		PhotoURL: input.PhotoURL,
	}
	if input.RoleId != "" {
		roleId, err := primitive.ObjectIDFromHex(input.RoleId)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat,
				"roleId không phải ObjectID hợp lệ", common.StatusBadRequest, nil)
		}
		doc.RoleId = roleId
	}
	return doc, nil
}

// OrgPolicyService xử lý CRUD và vòng đời cho policy.
type OrgPolicyService struct {
	*basesvc.BaseServiceMongoImpl[orgmodels.OrgPolicy]
}

// NewOrgPolicyService tạo OrgPolicyService mới.
func NewOrgPolicyService() (*OrgPolicyService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgPolicies)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OrgPolicies, common.ErrNotFound)
	}
	return &OrgPolicyService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orgmodels.OrgPolicy](coll)}, nil
}

// BuildPolicy validate input và dựng model policy.
func BuildPolicy(input *orgdto.OrgPolicyCreateInput) (orgmodels.OrgPolicy, error) {
	var zero orgmodels.OrgPolicy
	if err := validateNamed(input, &input.Name); err != nil {
		return zero, err
	}
	return orgmodels.OrgPolicy{
		Name:     input.Name,
		Body:     input.Body,
		Category: input.Category,
	}, nil
}

// validateNamed trim name, từ chối name trống rồi chạy validator trên input.
// Validation chạy TRƯỚC mọi thao tác ghi.
func validateNamed(input interface{}, name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return common.NewError(common.ErrCodeValidationInput,
			"Tên bản ghi không được để trống", common.StatusBadRequest, nil)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return nil
}
