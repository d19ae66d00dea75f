package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIdentifier(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "transaction url keeps suffix after marker",
			raw:  "https://kclean.id/trash-transaction/ABC123",
			want: "ABC123",
		},
		{
			name: "nested path after marker reduces to last segment",
			raw:  "https://kclean.id/trash-transaction/v1/ABC123",
			want: "ABC123",
		},
		{
			name: "plain url falls back to last segment",
			raw:  "https://kclean.id/profile/XYZ789",
			want: "XYZ789",
		},
		{
			name: "trailing slash skipped",
			raw:  "https://kclean.id/profile/XYZ789/",
			want: "XYZ789",
		},
		{
			name: "bare code passes through",
			raw:  "VCHR-42",
			want: "VCHR-42",
		},
		{
			name: "empty stays empty",
			raw:  "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractIdentifier(tc.raw))
		})
	}
}
