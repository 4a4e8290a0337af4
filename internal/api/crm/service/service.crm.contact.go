// Package crmsvc - Quản lý contact nhúng trong vendor.
//
// Contact không có collection riêng: mọi thao tác đọc cả mảng contacts của
// vendor, biến đổi đúng một phần tử rồi ghi đè lại toàn mảng. Không có
// optimistic concurrency — hai operator sửa cùng vendor thì lượt ghi sau
// thắng (last-write-wins), kể cả khi họ sửa hai contact khác nhau.
package crmsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/common"
	"ops_console/internal/global"
)

// vendorContactStore là phần của account service mà contact manager cần dùng.
type vendorContactStore interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (crmmodels.CrmAccount, error)
	FindVendorsWithContacts(ctx context.Context) ([]crmmodels.CrmAccount, error)
	WriteContacts(ctx context.Context, vendorId primitive.ObjectID, contacts []crmmodels.CrmContact) error
}

// ContactManager xử lý contact nhúng trong vendor.
type ContactManager struct {
	store vendorContactStore
}

// NewContactManager tạo manager trên account service.
func NewContactManager(store vendorContactStore) *ContactManager {
	return &ContactManager{store: store}
}

// FindVendorByContactId tra ngược vendor chứa contact.
// Không có index phụ contactId -> vendor nên phải quét mọi vendor có contact.
func (m *ContactManager) FindVendorByContactId(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	vendors, err := m.store.FindVendorsWithContacts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vendors {
		for _, contact := range vendors[i].Contacts {
			if contact.Id == contactId {
				return &vendors[i], nil
			}
		}
	}
	return nil, common.ErrNotFound
}

// applyToContact copy mảng contacts và biến đổi đúng phần tử có id tương ứng.
// Trả về mảng mới và cờ tìm thấy — mảng gốc không bị sửa, kể cả mảng Notes
// bên trong phần tử được biến đổi (copy riêng trước khi đưa vào fn).
// fn trả lỗi thì biến đổi coi như thất bại, lỗi đó chuyển nguyên lên caller.
func applyToContact(contacts []crmmodels.CrmContact, contactId string,
	fn func(*crmmodels.CrmContact) error) ([]crmmodels.CrmContact, bool, error) {

	result := make([]crmmodels.CrmContact, len(contacts))
	copy(result, contacts)
	for i := range result {
		if result[i].Id == contactId {
			result[i].Notes = append([]crmmodels.CrmNote(nil), result[i].Notes...)
			if err := fn(&result[i]); err != nil {
				return nil, true, err
			}
			return result, true, nil
		}
	}
	return result, false, nil
}

// mutateContact là khung chung của mọi thao tác contact:
// tra ngược vendor, biến đổi một contact, ghi đè lại toàn mảng.
// Biến đổi thất bại thì dừng trước khi ghi — không đóng dấu updatedAt,
// không phát event cho một lượt ghi không đổi gì.
func (m *ContactManager) mutateContact(ctx context.Context, contactId string,
	fn func(*crmmodels.CrmContact) error) (*crmmodels.CrmAccount, error) {

	vendor, err := m.FindVendorByContactId(ctx, contactId)
	if err != nil {
		return nil, err
	}

	contacts, found, err := applyToContact(vendor.Contacts, contactId, fn)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrNotFound
	}

	if err := m.store.WriteContacts(ctx, vendor.ID, contacts); err != nil {
		return nil, err
	}

	updated, err := m.store.FindOneById(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddContact thêm contact mới vào vendor.
func (m *ContactManager) AddContact(ctx context.Context, vendorId primitive.ObjectID, input *crmdto.CrmContactCreateInput) (*crmmodels.CrmAccount, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	vendor, err := m.store.FindOneById(ctx, vendorId)
	if err != nil {
		return nil, err
	}
	if vendor.Kind != crmmodels.AccountKindVendor {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Contact chỉ thêm được vào vendor", common.StatusBadRequest, nil)
	}

	contact := crmmodels.CrmContact{
		Id:        uuid.NewString(),
		Name:      input.Name,
		Title:     input.Title,
		CreatedAt: time.Now().UnixMilli(),
	}
	contacts := append(append([]crmmodels.CrmContact{}, vendor.Contacts...), contact)

	if err := m.store.WriteContacts(ctx, vendor.ID, contacts); err != nil {
		return nil, err
	}
	updated, err := m.store.FindOneById(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateContact sửa name/title của contact. Field rỗng trong input bị bỏ qua.
func (m *ContactManager) UpdateContact(ctx context.Context, contactId string, input *crmdto.CrmContactUpdateInput) (*crmmodels.CrmAccount, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		if name := strings.TrimSpace(input.Name); name != "" {
			c.Name = name
		}
		if input.Title != "" {
			c.Title = input.Title
		}
		return nil
	})
}

// SetDoNotContact bật/tắt cờ không liên hệ.
func (m *ContactManager) SetDoNotContact(ctx context.Context, contactId string, doNotContact bool) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		c.DoNotContact = doNotContact
		return nil
	})
}

// ArchiveContact lưu trữ contact. Idempotent.
func (m *ContactManager) ArchiveContact(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		c.IsArchived = true
		return nil
	})
}

// UnarchiveContact bỏ lưu trữ contact. Idempotent.
func (m *ContactManager) UnarchiveContact(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		c.IsArchived = false
		return nil
	})
}

// RemoveContact chuyển contact vào thùng rác (đóng dấu deletedAt).
// Gọi lại khi đã ở thùng rác giữ nguyên dấu thời gian cũ.
func (m *ContactManager) RemoveContact(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		if c.DeletedAt == 0 {
			c.DeletedAt = time.Now().UnixMilli()
		}
		return nil
	})
}

// RestoreContact khôi phục contact về trạng thái hoạt động: xóa hẳn key
// deletedAt khỏi document VÀ hạ cờ isArchived — khôi phục không bao giờ
// đưa contact về thẳng trạng thái lưu trữ.
func (m *ContactManager) RestoreContact(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		c.DeletedAt = 0
		c.IsArchived = false
		return nil
	})
}

// DeleteContact xóa cứng contact khỏi mảng — không khôi phục được.
func (m *ContactManager) DeleteContact(ctx context.Context, contactId string) (*crmmodels.CrmAccount, error) {
	vendor, err := m.FindVendorByContactId(ctx, contactId)
	if err != nil {
		return nil, err
	}

	kept := make([]crmmodels.CrmContact, 0, len(vendor.Contacts))
	for _, contact := range vendor.Contacts {
		if contact.Id != contactId {
			kept = append(kept, contact)
		}
	}

	if err := m.store.WriteContacts(ctx, vendor.ID, kept); err != nil {
		return nil, err
	}
	updated, err := m.store.FindOneById(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddContactNote thêm ghi chú vào contact, title suy ra từ dòng đầu của body.
func (m *ContactManager) AddContactNote(ctx context.Context, contactId string, input *crmdto.CrmNoteCreateInput) (*crmmodels.CrmAccount, error) {
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
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		c.Notes = append(c.Notes, note)
		return nil
	})
}

// noteNotFound là lỗi khi contact tồn tại nhưng ghi chú thì không.
// Trả từ trong transform nên mutateContact dừng trước khi ghi — contact
// giữ nguyên updatedAt, không có event, không có dòng audit nào phát ra.
func noteNotFound(noteId string) error {
	return common.NewError(common.ErrCodeDatabaseQuery,
		fmt.Sprintf("Không tìm thấy ghi chú %s trong contact", noteId),
		common.StatusNotFound, nil)
}

// UpdateContactNote sửa body một ghi chú của contact, title suy ra lại.
func (m *ContactManager) UpdateContactNote(ctx context.Context, contactId, noteId string, input *crmdto.CrmNoteUpdateInput) (*crmmodels.CrmAccount, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput,
			common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		for i := range c.Notes {
			if c.Notes[i].Id == noteId {
				c.Notes[i].Body = input.Body
				c.Notes[i].Title = crmmodels.NoteTitleFromBody(input.Body)
				return nil
			}
		}
		return noteNotFound(noteId)
	})
}

// RemoveContactNote xóa một ghi chú khỏi contact.
func (m *ContactManager) RemoveContactNote(ctx context.Context, contactId, noteId string) (*crmmodels.CrmAccount, error) {
	return m.mutateContact(ctx, contactId, func(c *crmmodels.CrmContact) error {
		kept := make([]crmmodels.CrmNote, 0, len(c.Notes))
		for _, note := range c.Notes {
			if note.Id != noteId {
				kept = append(kept, note)
			}
		}
		if len(kept) == len(c.Notes) {
			return noteNotFound(noteId)
		}
		c.Notes = kept
		return nil
	})
}
