// Package crmsvc - Tính kết quả gộp bản ghi trùng (pure, không chạm store).
package crmsvc

import (
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/utility"
)

// Tên các scalar field chọn được qua fieldChoices
const (
	MergeFieldName         = "name"
	MergeFieldEmail        = "email"
	MergeFieldPhone        = "phone"
	MergeFieldCompany      = "company"
	MergeFieldSource       = "source"
	MergeFieldSourceDetail = "sourceDetail"
)

// ComputeMerge tính bản ghi kết quả từ root + donors.
//
// Scalar: fieldChoices[f] nếu operator đã chọn, ngược lại giữ giá trị của root —
// không bao giờ tự lấy của donor, kể cả khi root để trống field đó.
// Child collections (notes/emails/phones/addresses/contacts): union theo id,
// root trước donors, phần tử trùng id lấy lần xuất hiện đầu tiên; sau đó lọc
// theo inclusionSets nếu có (vắng mặt = giữ tất cả).
// Tags: union tập hợp, không có cơ chế loại trừ.
//
// Hàm pure: không đọc không ghi store, gọi bao nhiêu lần cũng cho cùng kết quả.
func ComputeMerge(root crmmodels.CrmAccount, donors []crmmodels.CrmAccount,
	fieldChoices map[string]string, inclusionSets map[string][]string) crmmodels.CrmAccount {

	result := root

	// Scalars
	if v, ok := fieldChoices[MergeFieldName]; ok {
		result.Name = v
	}
	if v, ok := fieldChoices[MergeFieldEmail]; ok {
		result.Email = v
	}
	if v, ok := fieldChoices[MergeFieldPhone]; ok {
		result.Phone = v
	}
	if v, ok := fieldChoices[MergeFieldCompany]; ok {
		result.Company = v
	}
	if v, ok := fieldChoices[MergeFieldSource]; ok {
		result.Source = v
	}
	if v, ok := fieldChoices[MergeFieldSourceDetail]; ok {
		result.SourceDetail = v
	}

	// Child collections: union theo id, root trước donors
	noteSets := [][]crmmodels.CrmNote{root.Notes}
	emailSets := [][]crmmodels.CrmEmail{root.Emails}
	phoneSets := [][]crmmodels.CrmPhone{root.Phones}
	addressSets := [][]crmmodels.CrmAddress{root.Addresses}
	contactSets := [][]crmmodels.CrmContact{root.Contacts}
	tagSets := [][]string{root.Tags}
	for _, donor := range donors {
		noteSets = append(noteSets, donor.Notes)
		emailSets = append(emailSets, donor.Emails)
		phoneSets = append(phoneSets, donor.Phones)
		addressSets = append(addressSets, donor.Addresses)
		contactSets = append(contactSets, donor.Contacts)
		tagSets = append(tagSets, donor.Tags)
	}

	result.Notes = filterByInclusion(
		unionById(func(n crmmodels.CrmNote) string { return n.Id }, noteSets...),
		func(n crmmodels.CrmNote) string { return n.Id },
		inclusionSets["notes"])
	result.Emails = filterByInclusion(
		unionById(func(e crmmodels.CrmEmail) string { return e.Id }, emailSets...),
		func(e crmmodels.CrmEmail) string { return e.Id },
		inclusionSets["emails"])
	result.Phones = filterByInclusion(
		unionById(func(p crmmodels.CrmPhone) string { return p.Id }, phoneSets...),
		func(p crmmodels.CrmPhone) string { return p.Id },
		inclusionSets["phones"])
	result.Addresses = filterByInclusion(
		unionById(func(a crmmodels.CrmAddress) string { return a.Id }, addressSets...),
		func(a crmmodels.CrmAddress) string { return a.Id },
		inclusionSets["addresses"])
	result.Contacts = filterByInclusion(
		unionById(func(c crmmodels.CrmContact) string { return c.Id }, contactSets...),
		func(c crmmodels.CrmContact) string { return c.Id },
		inclusionSets["contacts"])

	// Tags: union tập hợp, giữ thứ tự xuất hiện đầu tiên
	allTags := []string{}
	for _, tags := range tagSets {
		allTags = append(allTags, tags...)
	}
	result.Tags = utility.UniqueStrings(allTags)

	return result
}

// unionById gộp nhiều danh sách thành một, loại trùng theo id.
// Thứ tự duyệt quyết định kết quả: phần tử trùng id lấy bản ở danh sách
// đứng trước (root trước donors).
func unionById[T any](idOf func(T) string, sets ...[]T) []T {
	seen := make(map[string]bool)
	result := []T{}
	for _, set := range sets {
		for _, item := range set {
			id := idOf(item)
			if seen[id] {
				continue
			}
			seen[id] = true
			result = append(result, item)
		}
	}
	return result
}

// filterByInclusion giữ lại các phần tử có id nằm trong included.
// included nil = operator không lọc gì, giữ tất cả.
func filterByInclusion[T any](items []T, idOf func(T) string, included []string) []T {
	if included == nil {
		return items
	}
	allowed := make(map[string]bool, len(included))
	for _, id := range included {
		allowed[id] = true
	}
	result := []T{}
	for _, item := range items {
		if allowed[idOf(item)] {
			result = append(result, item)
		}
	}
	return result
}

// DistinctFieldValues trả về các giá trị khác nhau (không rỗng) của từng scalar
// field trong nhóm, root trước donors — console dùng để dựng màn hình chọn
// giá trị khi các bản ghi mâu thuẫn nhau.
func DistinctFieldValues(root crmmodels.CrmAccount, donors []crmmodels.CrmAccount) map[string][]string {
	accounts := append([]crmmodels.CrmAccount{root}, donors...)

	collect := func(get func(crmmodels.CrmAccount) string) []string {
		values := []string{}
		for _, acc := range accounts {
			if v := get(acc); v != "" {
				values = append(values, v)
			}
		}
		return utility.UniqueStrings(values)
	}

	return map[string][]string{
		MergeFieldName:         collect(func(a crmmodels.CrmAccount) string { return a.Name }),
		MergeFieldEmail:        collect(func(a crmmodels.CrmAccount) string { return a.Email }),
		MergeFieldPhone:        collect(func(a crmmodels.CrmAccount) string { return a.Phone }),
		MergeFieldCompany:      collect(func(a crmmodels.CrmAccount) string { return a.Company }),
		MergeFieldSource:       collect(func(a crmmodels.CrmAccount) string { return a.Source }),
		MergeFieldSourceDetail: collect(func(a crmmodels.CrmAccount) string { return a.SourceDetail }),
	}
}
