//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpRebindStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpRebindStart,
			err:      errors.New("target not resolvable"),
			expected: "Failed to start rebind: target not resolvable",
		},
		{
			name:     "reset operation",
			op:       OpBindingReset,
			err:      errors.New("unknown binding"),
			expected: "Failed to reset binding: unknown binding",
		},
		{
			name:     "bindings load operation",
			op:       OpBindingsLoad,
			err:      errors.New("no such file"),
			expected: "Failed to load bindings: no such file",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("invalid toml"),
			expected: "Failed to load configuration: invalid toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpRebindStart,
			context:  "Player/Jump#jump-kb",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpRebindStart,
			context:  "Player/Jump#jump-kb",
			err:      errors.New("target not resolvable"),
			expected: "Failed to start rebind 'Player/Jump#jump-kb': target not resolvable",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpBindingReset,
			context:  "",
			err:      errors.New("target not resolvable"),
			expected: "Failed to reset binding: target not resolvable",
		},
		{
			name:     "watch with map context",
			op:       OpMapsWatch,
			context:  "Vehicle",
			err:      errors.New("unknown map"),
			expected: "Failed to watch action maps 'Vehicle': unknown map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpRebindStart, OpRebindListen, OpBindingReset, OpDisplay,
		OpBindingsLoad, OpMapsWatch,
		OpConfigLoad, OpLogOpen, OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
