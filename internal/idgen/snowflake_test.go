package idgen

import (
	"regexp"
	"testing"
)

func TestBillNo(t *testing.T) {
	Init(1)

	pattern := regexp.MustCompile(`^BILL[0-9]+$`)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		no := BillNo()
		if !pattern.MatchString(no) {
			t.Fatalf("bill no %q not digits/letters", no)
		}
		if len(no) > 32 {
			t.Fatalf("bill no %q exceeds 32 chars", no)
		}
		if _, dup := seen[no]; dup {
			t.Fatalf("duplicate bill no %q", no)
		}
		seen[no] = struct{}{}
	}
}
