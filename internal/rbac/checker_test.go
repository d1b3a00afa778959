package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"viewer", "bank:view", true},
		{"viewer", "bank:export", true},
		{"viewer", "bank:create", false},
		{"viewer", "bank:delete", false},
		{"curator", "bank:create", true},
		{"curator", "imports:view", true},
		{"admin", "bank:delete", true},
		{"admin", "anything:at:all", true},
		{"unknown", "bank:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}

	if !c.Any("viewer", "bank:create", "bank:view") {
		t.Error("Any should pass when one permission matches")
	}
	if c.Any("viewer", "bank:create", "bank:delete") {
		t.Error("Any should fail when none match")
	}
}

func TestMatchPermWildcard(t *testing.T) {
	c := NewChecker(map[string][]string{"ops": {"bank:*"}})
	if !c.Has("ops", "bank:delete") {
		t.Error("prefix wildcard should match bank:delete")
	}
	if c.Has("ops", "imports:view") {
		t.Error("prefix wildcard must not cross the prefix")
	}
}

func TestRequireMiddleware(t *testing.T) {
	h := Require("bank:create")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(role string) int {
		req := httptest.NewRequest(http.MethodPost, "/banks/import", nil)
		if role != "" {
			req = req.WithContext(WithRole(context.Background(), role))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve("curator"); code != http.StatusOK {
		t.Errorf("curator: %d", code)
	}
	if code := serve("viewer"); code != http.StatusForbidden {
		t.Errorf("viewer: %d", code)
	}
	if code := serve(""); code != http.StatusForbidden {
		t.Errorf("no role: %d", code)
	}
}
