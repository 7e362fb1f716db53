package canvas

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		name   string
		want   Kind
		wantOK bool
	}{
		{"move", Move, true},
		{"mousemove", Move, true},
		{"down", Down, true},
		{"mousedown", Down, true},
		{"up", Up, true},
		{"mouseup", Up, true},
		{"click", 0, false},
		{"MouseDown", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.name)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("%v.Valid() = false", k)
		}
	}
	if Kind(-1).Valid() || kindCount.Valid() {
		t.Error("out-of-range kinds reported valid")
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Kind(42).String() = %q, want unknown", got)
	}
}
