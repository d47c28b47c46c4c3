package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/sheets"
)

// countingStore records every call and answers with canned results.
type countingStore struct {
	mu       sync.Mutex
	lists    int
	posts    []map[string]any
	listBody string
	err      error
}

func (s *countingStore) List(ctx context.Context, coll sheets.Collection) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.listBody), nil
}

func (s *countingStore) Post(ctx context.Context, coll sheets.Collection, payload any) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, _ := json.Marshal(payload)
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	s.posts = append(s.posts, m)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"success":true}`), nil
}

func serve(t *testing.T, h http.Handler, method, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/x", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, strings.TrimSpace(rec.Body.String())
}

func TestValidationNeverCallsStore(t *testing.T) {
	tests := []struct {
		name   string
		route  Route
		method string
		body   string
		want   string
	}{
		{"guest without name", GuestsRoute(), http.MethodPost, `{"Email":"a@b.co"}`, "Name is required"},
		{"guest blank name", GuestsRoute(), http.MethodPut, `{"Name":"   "}`, "Name is required"},
		{"guest name not string", GuestsRoute(), http.MethodPost, `{"Name":42}`, "Name is required"},
		{"guest bad email", GuestsRoute(), http.MethodPost, `{"Name":"Ana","Email":"not-an-email"}`, "Invalid email format"},
		{"guest message not string", GuestsRoute(), http.MethodPost, `{"Name":"Ana","Message":7}`, "Message must be a string"},
		{"guest delete without name", GuestsRoute(), http.MethodDelete, `{}`, "Name is required"},
		{"request bad email", GuestRequestsRoute("PH"), http.MethodPost, `{"Name":"Ben","Email":"bad-email"}`, "Invalid email format"},
		{"request missing email", GuestRequestsRoute("PH"), http.MethodPost, `{"Name":"Ben"}`, "Email is required"},
		{"request pending email", GuestRequestsRoute("PH"), http.MethodPost, `{"Name":"Ben","Email":"Pending"}`, "Invalid email format"},
		{"entourage without name", EntourageRoute(), http.MethodPost, `{"RoleTitle":"Best Man"}`, "Name is required"},
		{"sponsor without male", PrincipalSponsorsRoute(), http.MethodPost, `{"FemalePrincipalSponsor":"Mrs. Santos"}`, "Male Principal Sponsor is required"},
		{"sponsor delete without key", PrincipalSponsorsRoute(), http.MethodDelete, `{"Name":"x"}`, "Male Principal Sponsor is required"},
		{"invalid json", GuestsRoute(), http.MethodPost, `{"Name":`, "Invalid JSON body"},
		{"json array", GuestsRoute(), http.MethodPost, `[]`, "Invalid JSON body"},
		{"json null", GuestsRoute(), http.MethodPost, `null`, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			code, body := serve(t, New(store, tt.route, zerolog.Nop()), tt.method, tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(body), &got); err != nil {
				t.Fatalf("body %q is not JSON: %v", body, err)
			}
			if got["error"] != tt.want {
				t.Errorf("error = %q, want %q", got["error"], tt.want)
			}
			if store.lists != 0 || len(store.posts) != 0 {
				t.Errorf("store called %d/%d times, want none", store.lists, len(store.posts))
			}
		})
	}
}

func TestPayloads(t *testing.T) {
	tests := []struct {
		name   string
		route  Route
		method string
		body   string
		want   map[string]any
	}{
		{
			name: "guest create defaults", route: GuestsRoute(), method: http.MethodPost,
			body: `{"Name":"  Ana Cruz ","Email":""}`,
			want: map[string]any{"Name": "Ana Cruz", "Email": "Pending", "RSVP": "", "Message": ""},
		},
		{
			name: "guest update", route: GuestsRoute(), method: http.MethodPut,
			body: `{"Name":"Ana Cruz","Email":"a@b.co","RSVP":"Yes","Message":" hi "}`,
			want: map[string]any{"action": "update", "Name": "Ana Cruz", "Email": "a@b.co", "RSVP": "Yes", "Message": "hi"},
		},
		{
			name: "guest delete", route: GuestsRoute(), method: http.MethodDelete,
			body: `{"Name":"Ana Cruz","Email":"ignored@x.io"}`,
			want: map[string]any{"action": "delete", "Name": "Ana Cruz"},
		},
		{
			name: "request create normalizes phone", route: GuestRequestsRoute("PH"), method: http.MethodPost,
			body: `{"Name":"Ben","Email":"ben@x.io","Phone":"0917 123 4567"}`,
			want: map[string]any{"Name": "Ben", "Email": "ben@x.io", "Phone": "+639171234567", "RSVP": "", "Message": ""},
		},
		{
			name: "request update defaults email", route: GuestRequestsRoute("PH"), method: http.MethodPut,
			body: `{"Name":"Ben","Phone":"call me"}`,
			want: map[string]any{"action": "update", "Name": "Ben", "Email": "Pending", "Phone": "call me", "RSVP": "", "Message": ""},
		},
		{
			name: "entourage rename", route: EntourageRoute(), method: http.MethodPut,
			body: `{"Name":"Carlo","originalName":"Karl","RoleCategory":"Best Man","RoleTitle":"Best Man"}`,
			want: map[string]any{"action": "update", "originalName": "Karl", "Name": "Carlo", "RoleCategory": "Best Man", "RoleTitle": "Best Man", "Email": "Pending"},
		},
		{
			name: "entourage update defaults original name", route: EntourageRoute(), method: http.MethodPut,
			body: `{"Name":"Carlo"}`,
			want: map[string]any{"action": "update", "originalName": "Carlo", "Name": "Carlo", "RoleCategory": "", "RoleTitle": "", "Email": "Pending"},
		},
		{
			name: "sponsor update", route: PrincipalSponsorsRoute(), method: http.MethodPut,
			body: `{"MalePrincipalSponsor":"Mr. Reyes","FemalePrincipalSponsor":"Mrs. Reyes"}`,
			want: map[string]any{"action": "update", "originalName": "Mr. Reyes", "MalePrincipalSponsor": "Mr. Reyes", "FemalePrincipalSponsor": "Mrs. Reyes"},
		},
		{
			name: "sponsor delete", route: PrincipalSponsorsRoute(), method: http.MethodDelete,
			body: `{"MalePrincipalSponsor":"Mr. Reyes"}`,
			want: map[string]any{"action": "delete", "MalePrincipalSponsor": "Mr. Reyes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			code, _ := serve(t, New(store, tt.route, zerolog.Nop()), tt.method, tt.body)
			wantCode := http.StatusOK
			if tt.method == http.MethodPost {
				wantCode = http.StatusCreated
			}
			if code != wantCode {
				t.Errorf("status = %d, want %d", code, wantCode)
			}
			if len(store.posts) != 1 {
				t.Fatalf("posts = %d, want 1", len(store.posts))
			}
			got := store.posts[0]
			if len(got) != len(tt.want) {
				t.Errorf("payload = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("payload[%s] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestStoreFailures(t *testing.T) {
	tests := []struct {
		method string
		body   string
		want   string
	}{
		{http.MethodGet, "", "Failed to fetch guests"},
		{http.MethodPost, `{"Name":"Ana"}`, "Failed to add guest"},
		{http.MethodPut, `{"Name":"Ana"}`, "Failed to update guest"},
		{http.MethodDelete, `{"Name":"Ana"}`, "Failed to delete guest"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			store := &countingStore{err: errors.New("boom: secret upstream detail")}
			code, body := serve(t, New(store, GuestsRoute(), zerolog.Nop()), tt.method, tt.body)
			if code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", code)
			}
			if strings.Contains(body, "secret") {
				t.Errorf("upstream detail leaked: %s", body)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body = %s, want %q", body, tt.want)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	store := &countingStore{}
	code, body := serve(t, New(store, GuestsRoute(), zerolog.Nop()), http.MethodPatch, `{}`)
	if code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", code)
	}
	if body != `{"error":"Method not allowed"}` {
		t.Errorf("body = %s", body)
	}
}

func TestListRelaysBody(t *testing.T) {
	store := &countingStore{listBody: `[{"Name":"Nikki","Email":"Pending","RSVP":"","Message":""}]`}
	code, body := serve(t, New(store, GuestsRoute(), zerolog.Nop()), http.MethodGet, "")
	if code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if body != store.listBody {
		t.Errorf("body = %s", body)
	}
}
