package models

import "testing"

func TestNoteTitleFromBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"dòng đầu bình thường", "Gọi lại khách\nchi tiết bên dưới", "Gọi lại khách"},
		{"dòng đầu rỗng", "\n\n  Họp tuần sau  \nnội dung", "Họp tuần sau"},
		{"toàn dòng rỗng", "\n  \n\t\n", ""},
		{"body rỗng", "", ""},
		{"một dòng duy nhất", "Đã thanh toán", "Đã thanh toán"},
	}

	for _, tc := range cases {
		if got := NoteTitleFromBody(tc.body); got != tc.want {
			t.Errorf("%s: NoteTitleFromBody = %q, muốn %q", tc.name, got, tc.want)
		}
	}
}
