package postgres

import (
	"strings"
	"testing"
)

func TestOpenRejectsMalformedURL(t *testing.T) {
	db, err := Open("://not-a-url", PoolConfig{})
	if err == nil {
		_ = Close(db)
		t.Fatalf("Open accepted a malformed URL")
	}
	if !strings.Contains(err.Error(), "open database") {
		t.Fatalf("error = %q, want it wrapped with the open stage", err)
	}
}
