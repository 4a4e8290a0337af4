// Package financesvc - service cho entity tài chính.
package financesvc

import (
	"fmt"
	"strings"

	basesvc "ops_console/internal/api/base/service"
	financedto "ops_console/internal/api/finance/dto"
	financemodels "ops_console/internal/api/finance/models"
	"ops_console/internal/common"
	"ops_console/internal/global"
)

// TaxRateService xử lý CRUD và vòng đời cho mức thuế.
type TaxRateService struct {
	*basesvc.BaseServiceMongoImpl[financemodels.TaxRate]
}

// NewTaxRateService tạo TaxRateService mới.
func NewTaxRateService() (*TaxRateService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FinanceTaxRates)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.FinanceTaxRates, common.ErrNotFound)
	}
	return &TaxRateService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[financemodels.TaxRate](coll)}, nil
}

// BuildTaxRate validate input và dựng model — chưa ghi gì vào store.
func BuildTaxRate(input *financedto.TaxRateCreateInput) (financemodels.TaxRate, error) {
	var zero financemodels.TaxRate
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Tên bản ghi không được để trống", common.StatusBadRequest, nil)
	}
	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return financemodels.TaxRate{
		Name:        input.Name,
		Rate:        input.Rate,
		Region:      input.Region,
		Description: input.Description,
	}, nil
}
