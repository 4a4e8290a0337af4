// Package database - Index cho các collection của console.
package database

import (
	"context"
	"strings"

	"ops_console/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo index cho các collection. Gọi một lần lúc khởi động,
// index đã tồn tại thì bỏ qua.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// crm_accounts: kind — list theo loại bản ghi
	crmAccounts := db.Collection(global.MongoDB_ColNames.CrmAccounts)
	if _, err := crmAccounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "kind", Value: 1}},
		Options: options.Index().SetName("crm_account_kind"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_accounts: (kind, email) sparse — gom nhóm trùng theo email cho customer
	if _, err := crmAccounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "kind", Value: 1},
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetName("crm_account_kind_email").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_accounts: (kind, name) — gom nhóm trùng theo name cho vendor
	if _, err := crmAccounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "kind", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetName("crm_account_kind_name"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_accounts: createdAt — sort mặc định của console
	if _, err := crmAccounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("crm_account_created_at"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// Lưu ý: không có index trên contacts.id — tra ngược contact đi qua scan
	// toàn bộ vendor, xem manager contact trong internal/api/crm/service.

	// Các collection generic: name — list và tìm theo tên
	for _, colName := range []string{
		global.MongoDB_ColNames.OrgTags,
		global.MongoDB_ColNames.OrgRoles,
		global.MongoDB_ColNames.OrgEmployees,
		global.MongoDB_ColNames.OrgPolicies,
		global.MongoDB_ColNames.FinanceTaxRates,
		global.MongoDB_ColNames.EmailTemplates,
		global.MongoDB_ColNames.EmailVariables,
	} {
		col := db.Collection(colName)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName(colName + "_name"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
