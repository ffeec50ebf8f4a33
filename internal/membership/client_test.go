package membership

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCanBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/members/cust-1/can-book":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"can_book":true}`))
		case "/api/v1/members/cust-2/can-book":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"can_book":false}`))
		case "/api/v1/members/unknown/can-book":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	tests := []struct {
		name       string
		customerID string
		want       bool
		wantErr    bool
	}{
		{name: "entitled", customerID: "cust-1", want: true},
		{name: "not entitled", customerID: "cust-2", want: false},
		{name: "unknown member", customerID: "unknown", want: false},
		{name: "upstream failure", customerID: "boom", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.CanBook(context.Background(), tt.customerID)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CanBook error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanBook = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowAll(t *testing.T) {
	ok, err := AllowAll{}.CanBook(context.Background(), "anyone")
	if err != nil || !ok {
		t.Fatalf("AllowAll = (%v, %v), want (true, nil)", ok, err)
	}
}
