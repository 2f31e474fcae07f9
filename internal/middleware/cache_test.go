package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPackUnpackCached(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"restaurants":[]}`)

	payload, err := packCached(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	status, gotHdr, gotBody, ok := unpackCached(payload)
	if !ok {
		t.Fatal("unpack rejected a valid payload")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if ct := gotHdr.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestUnpackCachedRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := unpackCached(bs); len(bs) < 8 && ok {
			t.Fatalf("unpackCached accepted %d-byte input", len(bs))
		}
	}
	// A header length pointing past the end of the payload must fail.
	bogus := []byte{0, 0, 0, 200, 0, 0, 1, 0}
	if _, _, _, ok := unpackCached(bogus); ok {
		t.Fatal("unpackCached accepted an out-of-range header length")
	}
}

func TestRecordingWriterOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &recordingWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := rw.Write([]byte("12345678")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !rw.overflow {
		t.Fatal("overflow flag not set after exceeding limit")
	}
	// The client still received the full response.
	if got := rec.Body.String(); got != "12345678" {
		t.Fatalf("client saw %q, want full body", got)
	}
}
