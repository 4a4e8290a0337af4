package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"ops_console/config"
	"ops_console/internal/database"
	"ops_console/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Module CRM (tiền tố crm_)
	global.MongoDB_ColNames.CrmAccounts = "crm_accounts"

	// Module Org (tiền tố org_)
	global.MongoDB_ColNames.OrgTags = "org_tags"
	global.MongoDB_ColNames.OrgRoles = "org_roles"
	global.MongoDB_ColNames.OrgEmployees = "org_employees"
	global.MongoDB_ColNames.OrgPolicies = "org_policies"

	// Module Finance (tiền tố finance_)
	global.MongoDB_ColNames.FinanceTaxRates = "finance_tax_rates"

	// Module Email (tiền tố email_)
	global.MongoDB_ColNames.EmailTemplates = "email_templates"
	global.MongoDB_ColNames.EmailVariables = "email_variables"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, no_sql_injection, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	if err := database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName)); err != nil {
		logrus.Errorf("Failed to create indexes: %v", err)
	} else {
		logrus.Info("Ensured collection indexes")
	}
}
