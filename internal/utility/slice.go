package utility

// UniqueStrings trả về slice mới đã loại bỏ phần tử trùng, giữ nguyên thứ tự xuất hiện đầu tiên
func UniqueStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, v := range items {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
