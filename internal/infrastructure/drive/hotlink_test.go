package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFolderID(t *testing.T) {
	t.Run("share URL with folder segment", func(t *testing.T) {
		id, err := ExtractFolderID("https://drive.google.com/drive/folders/1AbC_dEf-123?usp=sharing")

		assert.NoError(t, err)
		assert.Equal(t, "1AbC_dEf-123", id)
	})

	t.Run("URL without folder segment", func(t *testing.T) {
		_, err := ExtractFolderID("https://drive.google.com/file/d/ABC123/view")

		assert.Error(t, err)
	})
}

func TestConvertShareURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "file share link",
			in:   "https://drive.google.com/file/d/ABC123/view?usp=sharing",
			want: "https://lh3.googleusercontent.com/d/ABC123=w800",
		},
		{
			name: "uc id link",
			in:   "https://drive.google.com/uc?id=XyZ_9-8&export=view",
			want: "https://lh3.googleusercontent.com/d/XyZ_9-8=w800",
		},
		{
			name: "already a hotlink",
			in:   "https://lh3.googleusercontent.com/d/ABC123=w800",
			want: "https://lh3.googleusercontent.com/d/ABC123=w800",
		},
		{
			name: "unrelated URL passes through",
			in:   "https://example.com/photo.jpg",
			want: "https://example.com/photo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertShareURL(tt.in))
		})
	}
}

func TestConvertShareURL_Idempotent(t *testing.T) {
	once := ConvertShareURL("https://drive.google.com/file/d/ABC123/view")

	assert.Equal(t, once, ConvertShareURL(once))
}
