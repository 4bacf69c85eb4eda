package product

import "testing"

func TestValidUPC(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00007127930100", true},
		{"11111111111111", true},
		{"0000712793010", false},
		{"000071279301000", false},
		{"0000712793010a", false},
		{" 00007127930100", false},
		{"", false},
		{"0000712793010١", false},
	}
	for _, tt := range tests {
		if got := ValidUPC(tt.in); got != tt.want {
			t.Errorf("ValidUPC(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
