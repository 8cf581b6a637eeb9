package rest

import "testing"

type pageItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestDecodePageBareArray(t *testing.T) {
	page, err := DecodePage[pageItem]([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(page.Items))
	}
	if page.TotalCount != 2 {
		t.Fatalf("bare array total should equal its length, got %d", page.TotalCount)
	}
}

func TestDecodePageEnvelope(t *testing.T) {
	page, err := DecodePage[pageItem]([]byte(`{"count":41,"results":[{"id":1,"name":"a"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(page.Items))
	}
	if page.TotalCount != 41 {
		t.Fatalf("expected count 41 got %d", page.TotalCount)
	}
}

func TestDecodePageEmptyBodies(t *testing.T) {
	for _, body := range []string{"", "null", "{}", "[]"} {
		page, err := DecodePage[pageItem]([]byte(body))
		if err != nil {
			t.Fatalf("decode %q: %v", body, err)
		}
		if page.Items == nil {
			t.Fatalf("items must never be nil for %q", body)
		}
		if len(page.Items) != 0 || page.TotalCount != 0 {
			t.Fatalf("expected empty page for %q, got %+v", body, page)
		}
	}
}

func TestDecodePageMalformed(t *testing.T) {
	if _, err := DecodePage[pageItem]([]byte(`{"count":"x"`)); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}
