// Package dto - input cho entity tài chính.
package dto

// TaxRateCreateInput dữ liệu tạo mức thuế mới.
type TaxRateCreateInput struct {
	Name        string  `json:"name" validate:"required,max=100,no_xss"`
	Rate        float64 `json:"rate" validate:"gte=0,lte=100"`
	Region      string  `json:"region,omitempty" validate:"omitempty,max=100"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500"`
}
