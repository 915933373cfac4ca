package strbridge

import "testing"

func TestStringData(t *testing.T) {
	tests := []struct {
		name string
		s    StringData
		null bool
		size int
		str  string
	}{
		{"null", NullStringData(), true, 0, ""},
		{"nil bytes", NewStringData(nil), false, 0, ""},
		{"empty bytes", NewStringData([]byte{}), false, 0, ""},
		{"value", NewStringData([]byte("héllo")), false, 6, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.IsNull() != tt.null {
				t.Errorf("IsNull = %v, want %v", tt.s.IsNull(), tt.null)
			}
			if tt.s.Size() != tt.size {
				t.Errorf("Size = %d, want %d", tt.s.Size(), tt.size)
			}
			if tt.s.String() != tt.str {
				t.Errorf("String = %q, want %q", tt.s.String(), tt.str)
			}
		})
	}

	if NullStringData().Data() != nil {
		t.Error("null Data should be nil")
	}
}

func TestHostString_IsNull(t *testing.T) {
	if !NullString.IsNull() {
		t.Error("NullString should be null")
	}
	if HostString(1).IsNull() {
		t.Error("handle 1 should not be null")
	}
}

func TestReleasePolicy_String(t *testing.T) {
	tests := []struct {
		p    ReleasePolicy
		want string
	}{
		{KeepReference, "keep"},
		{DropLocalReference, "drop"},
		{ReleasePolicy(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
