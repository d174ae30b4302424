package buildinfo

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestIsVersionRequest(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"in", "-V"}, false},
		{[]string{"--verbose"}, false},
	}
	for _, tt := range tests {
		if got := IsVersionRequest(tt.args); got != tt.want {
			t.Errorf("IsVersionRequest(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, "asset-packer")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "asset-packer "+Version {
		t.Errorf("unexpected version line %q", lines[0])
	}
	stamp := strings.TrimPrefix(lines[1], "Built: ")
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", stamp, err)
	}
}
