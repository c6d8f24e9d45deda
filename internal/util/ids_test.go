package util

import "testing"

func TestArxivIDFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "plain id",
			filename: "1701.00001.pdf",
			want:     "1701.00001",
		},
		{
			name:     "version suffix stripped",
			filename: "1701.00001v2.pdf",
			want:     "1701.00001",
		},
		{
			name:     "multi digit version",
			filename: "2001.12345v12.pdf",
			want:     "2001.12345",
		},
		{
			name:     "two v characters left unsplit",
			filename: "cond-matv1.00001v2.pdf",
			want:     "cond-matv1.00001v2",
		},
		{
			name:     "v followed by non-numeric segment",
			filename: "1701.0000v1a.pdf",
			want:     "1701.0000v1a",
		},
		{
			name:     "trailing v with no digits",
			filename: "1701.00001v.pdf",
			want:     "1701.00001v",
		},
		{
			name:     "uppercase extension",
			filename: "1701.00001.PDF",
			want:     "1701.00001",
		},
		{
			name:     "uppercase extension with version suffix",
			filename: "1701.00001v2.Pdf",
			want:     "1701.00001",
		},
		{
			name:     "no extension",
			filename: "1701.00001v3",
			want:     "1701.00001",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ArxivIDFromFilename(tc.filename); got != tc.want {
				t.Fatalf("ArxivIDFromFilename(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}
