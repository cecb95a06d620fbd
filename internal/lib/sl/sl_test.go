package sl

import (
	"errors"
	"log/slog"
	"testing"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantVal string
	}{
		{
			name:    "simple error",
			err:     errors.New("something went wrong"),
			wantVal: "something went wrong",
		},
		{
			name:    "wrapped error",
			err:     errors.Join(errors.New("outer"), errors.New("inner")),
			wantVal: "outer\ninner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Err(tt.err)

			if attr.Key != "error" {
				t.Errorf("Err() key = %q, want %q", attr.Key, "error")
			}
			if attr.Value.Kind() != slog.KindString {
				t.Errorf("Err() value kind = %v, want string", attr.Value.Kind())
			}
			if attr.Value.String() != tt.wantVal {
				t.Errorf("Err() value = %q, want %q", attr.Value.String(), tt.wantVal)
			}
		})
	}
}
