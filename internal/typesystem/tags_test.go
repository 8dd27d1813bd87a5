package typesystem

import (
	"testing"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name string
		a, b Tag
		want Tag
	}{
		{"inproc poisons xproc", TagInProc, TagXProc, TagInProc},
		{"xproc poisoned by inproc", TagXProc, TagInProc, TagInProc},
		{"both inproc", TagInProc, TagInProc, TagInProc},
		{"both xproc", TagXProc, TagXProc, TagXProc},
		{"untagged behaves as xproc", TagNone, TagXProc, TagXProc},
		{"untagged poisoned by inproc", TagNone, TagInProc, TagInProc},
		{"both untagged", TagNone, TagNone, TagXProc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.a, tt.b); got != tt.want {
				t.Errorf("Combine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Combine is commutative.
			if got := Combine(tt.b, tt.a); got != tt.want {
				t.Errorf("Combine(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// TestAssignableTag covers the full source x target matrix including
// the untagged (xproc-equivalent) row and column.
func TestAssignableTag(t *testing.T) {
	allTags := []Tag{TagInProc, TagXProc, TagNone}

	for _, src := range allTags {
		for _, target := range allTags {
			want := !(src.Normalize() == TagInProc && target.Normalize() == TagXProc)
			if got := AssignableTag(src, target); got != want {
				t.Errorf("AssignableTag(%v, %v) = %v, want %v", src, target, got, want)
			}
		}
	}

	// Spot-check the two interesting directions.
	if AssignableTag(TagInProc, TagXProc) {
		t.Error("inproc must not narrow to xproc implicitly")
	}
	if !AssignableTag(TagXProc, TagInProc) {
		t.Error("xproc must widen to inproc")
	}
}

func TestTagString(t *testing.T) {
	if TagInProc.String() != "inproc" {
		t.Errorf("TagInProc.String() = %q", TagInProc.String())
	}
	if TagXProc.String() != "xproc" {
		t.Errorf("TagXProc.String() = %q", TagXProc.String())
	}
	if TagNone.String() != "" {
		t.Errorf("TagNone.String() = %q", TagNone.String())
	}
}
