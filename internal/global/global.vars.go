package global

import (
	"ops_console/config"
	"ops_console/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	CrmAccounts     string // Tên collection cho khách hàng và nhà cung cấp
	OrgTags         string // Tên collection cho nhãn phân loại
	OrgRoles        string // Tên collection cho vai trò nội bộ
	OrgEmployees    string // Tên collection cho nhân viên
	OrgPolicies     string // Tên collection cho chính sách
	FinanceTaxRates string // Tên collection cho thuế suất
	EmailTemplates  string // Tên collection cho mẫu email
	EmailVariables  string // Tên collection cho biến email
}

// Các biến toàn cục, gán một lần trong InitGlobal trước khi server nhận request
var (
	// Validate là validator dùng chung cho mọi DTO
	Validate *validator.Validate

	// MongoDB_Session là phiên kết nối tới MongoDB
	MongoDB_Session *mongo.Client

	// MongoDB_ServerConfig là cấu hình của server
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames MongoDB_CollectionName
)

// RegistryCollections chứa các collection đã đăng ký theo tên
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()
