// Package crmsvc - Service bản ghi CRM (crm_accounts): CRUD, vòng đời, ghi chú.
package crmsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "ops_console/internal/api/base/service"
	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/api/lifecycle"
	"ops_console/internal/common"
	"ops_console/internal/global"
)

// CrmAccountService xử lý CRUD và vòng đời cho bản ghi CRM.
type CrmAccountService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmAccount]
}

// NewCrmAccountService tạo CrmAccountService mới.
func NewCrmAccountService() (*CrmAccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmAccounts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmAccounts, common.ErrNotFound)
	}
	return &CrmAccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmAccount](coll),
	}, nil
}

// BuildAccount validate input và dựng model — chưa ghi gì vào store.
// Validation chạy TRƯỚC mọi thao tác ghi — input hỏng không để lại gì trong store.
func BuildAccount(input *crmdto.CrmAccountCreateInput) (crmmodels.CrmAccount, error) {
	var zero crmmodels.CrmAccount

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Tên bản ghi không được để trống", common.StatusBadRequest, nil)
	}
	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	doc := crmmodels.CrmAccount{
		Kind:         input.Kind,
		Name:         input.Name,
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Company:      strings.TrimSpace(input.Company),
		Source:       input.Source,
		SourceDetail: input.SourceDetail,
		Tags:         input.Tags,
	}
	if input.OwnerId != "" {
		ownerId, err := primitive.ObjectIDFromHex(input.OwnerId)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat,
				"ownerId không phải ObjectID hợp lệ", common.StatusBadRequest, nil)
		}
		doc.OwnerId = ownerId
	}
	return doc, nil
}

// CreateAccount validate rồi tạo bản ghi CRM mới.
func (s *CrmAccountService) CreateAccount(ctx context.Context, input *crmdto.CrmAccountCreateInput) (*crmmodels.CrmAccount, error) {
	doc, err := BuildAccount(input)
	if err != nil {
		return nil, err
	}

	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByLifecycle trả về các bản ghi theo loại và trạng thái vòng đời, mới nhất trước.
func (s *CrmAccountService) ListByLifecycle(ctx context.Context, kind string, state lifecycle.State) ([]crmmodels.CrmAccount, error) {
	extra := bson.M{}
	if kind != "" {
		extra["kind"] = kind
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindByLifecycle(ctx, state, extra, opts)
}

// PatchAccount áp patch tri-state lên bản ghi. Name không xóa được —
// payload xóa name (nil hoặc "") bị từ chối trước khi chạm store.
func (s *CrmAccountService) PatchAccount(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) (*crmmodels.CrmAccount, error) {
	if raw, ok := patch["name"]; ok {
		name, _ := raw.(string)
		if raw == nil || strings.TrimSpace(name) == "" {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"Tên bản ghi không được để trống", common.StatusBadRequest, nil)
		}
		patch["name"] = strings.TrimSpace(name)
	}
	if raw, ok := patch["kind"]; ok {
		kind, _ := raw.(string)
		if kind != crmmodels.AccountKindCustomer && kind != crmmodels.AccountKindVendor {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"kind chỉ nhận customer hoặc vendor", common.StatusBadRequest, nil)
		}
	}

	updated, err := s.ApplyPatch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddNote thêm ghi chú vào account. Title suy ra từ dòng đầu của body,
// kèm snapshot người tạo tại thời điểm ghi.
func (s *CrmAccountService) AddNote(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmNoteCreateInput) (*crmmodels.CrmAccount, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	note := crmmodels.CrmNote{
		Id:                uuid.NewString(),
		Title:             crmmodels.NoteTitleFromBody(input.Body),
		Body:              input.Body,
		CreatedAt:         time.Now().UnixMilli(),
		CreatedByName:     input.CreatedByName,
		CreatedByEmail:    input.CreatedByEmail,
		CreatedByPhotoURL: input.CreatedByPhotoURL,
	}

	update := &basesvc.UpdateData{
		Push: map[string]interface{}{"notes": note},
	}
	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateNote sửa body một ghi chú của account, title suy ra lại.
func (s *CrmAccountService) UpdateNote(ctx context.Context, id primitive.ObjectID, noteId string, input *crmdto.CrmNoteUpdateInput) (*crmmodels.CrmAccount, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	account, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range account.Notes {
		if account.Notes[i].Id == noteId {
			account.Notes[i].Body = input.Body
			account.Notes[i].Title = crmmodels.NoteTitleFromBody(input.Body)
			found = true
			break
		}
	}
	if !found {
		return nil, common.ErrNotFound
	}

	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"notes": account.Notes},
	}
	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveNote xóa một ghi chú khỏi account.
func (s *CrmAccountService) RemoveNote(ctx context.Context, id primitive.ObjectID, noteId string) (*crmmodels.CrmAccount, error) {
	account, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := make([]crmmodels.CrmNote, 0, len(account.Notes))
	for _, note := range account.Notes {
		if note.Id != noteId {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(account.Notes) {
		return nil, common.ErrNotFound
	}

	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"notes": kept},
	}
	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ====================================
// Cầu nối cho merge coordinator (mergeStore)
// ====================================

// MergeReplace ghi đè toàn bộ field của bản ghi đích bằng kết quả đã tính.
func (s *CrmAccountService) MergeReplace(ctx context.Context, id primitive.ObjectID, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error) {
	return s.ReplaceById(ctx, id, acc)
}

// MergeInsert chèn kết quả merge thành bản ghi mới — id và createdAt bị bỏ
// để store cấp mới.
func (s *CrmAccountService) MergeInsert(ctx context.Context, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error) {
	acc.ID = primitive.NilObjectID
	acc.CreatedAt = 0
	acc.UpdatedAt = 0
	return s.InsertOne(ctx, acc)
}

// MergeRemove chuyển bản ghi vào thùng rác (xóa mềm, khôi phục được).
func (s *CrmAccountService) MergeRemove(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.Remove(ctx, id)
	return err
}

// ====================================
// Cầu nối cho contact manager (vendorContactStore)
// ====================================

// FindVendorsWithContacts trả về mọi vendor có ít nhất một contact.
// Đây là bước scan của tra ngược contact — không có index phụ contactId -> vendor.
func (s *CrmAccountService) FindVendorsWithContacts(ctx context.Context) ([]crmmodels.CrmAccount, error) {
	filter := bson.M{
		"kind":       crmmodels.AccountKindVendor,
		"contacts.0": bson.M{"$exists": true},
	}
	return s.Find(ctx, filter, nil)
}

// WriteContacts ghi đè toàn bộ mảng contacts của một vendor.
func (s *CrmAccountService) WriteContacts(ctx context.Context, vendorId primitive.ObjectID, contacts []crmmodels.CrmContact) error {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"contacts": contacts},
	}
	_, err := s.UpdateById(ctx, vendorId, update)
	return err
}
