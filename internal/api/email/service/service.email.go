// Package emailsvc - service cho entity email.
package emailsvc

import (
	"fmt"
	"strings"

	basesvc "ops_console/internal/api/base/service"
	emaildto "ops_console/internal/api/email/dto"
	emailmodels "ops_console/internal/api/email/models"
	"ops_console/internal/common"
	"ops_console/internal/global"
)

// EmailTemplateService xử lý CRUD và vòng đời cho template email.
type EmailTemplateService struct {
	*basesvc.BaseServiceMongoImpl[emailmodels.EmailTemplate]
}

// NewEmailTemplateService tạo EmailTemplateService mới.
func NewEmailTemplateService() (*EmailTemplateService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EmailTemplates)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EmailTemplates, common.ErrNotFound)
	}
	return &EmailTemplateService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[emailmodels.EmailTemplate](coll)}, nil
}

// BuildTemplate validate input và dựng model template.
func BuildTemplate(input *emaildto.EmailTemplateCreateInput) (emailmodels.EmailTemplate, error) {
	var zero emailmodels.EmailTemplate
	if err := requireName(input, &input.Name); err != nil {
		return zero, err
	}
	return emailmodels.EmailTemplate{
		Name:     input.Name,
		Subject:  input.Subject,
		Body:     input.Body,
		Category: input.Category,
	}, nil
}

// EmailVariableService xử lý CRUD và vòng đời cho biến nội suy.
type EmailVariableService struct {
	*basesvc.BaseServiceMongoImpl[emailmodels.EmailVariable]
}

// NewEmailVariableService tạo EmailVariableService mới.
func NewEmailVariableService() (*EmailVariableService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EmailVariables)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EmailVariables, common.ErrNotFound)
	}
	return &EmailVariableService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[emailmodels.EmailVariable](coll)}, nil
}

// BuildVariable validate input và dựng model biến nội suy.
func BuildVariable(input *emaildto.EmailVariableCreateInput) (emailmodels.EmailVariable, error) {
	var zero emailmodels.EmailVariable
	if err := requireName(input, &input.Name); err != nil {
		return zero, err
	}
	return emailmodels.EmailVariable{
		Name:        input.Name,
		Value:       input.Value,
		Description: input.Description,
	}, nil
}

// requireName trim name, từ chối name trống rồi chạy validator trên input.
func requireName(input interface{}, name *string) error {
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
