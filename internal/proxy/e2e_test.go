package proxy_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/testutil"
)

func call(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, strings.TrimSpace(string(data))
}

func listGuests(t *testing.T, base string) []models.Guest {
	t.Helper()
	code, body := call(t, http.MethodGet, base+"/api/guests", "")
	if code != http.StatusOK {
		t.Fatalf("GET /api/guests = %d %s", code, body)
	}
	var guests []models.Guest
	if err := json.Unmarshal([]byte(body), &guests); err != nil {
		t.Fatalf("decode guests: %v", err)
	}
	return guests
}

func TestCreateThenList(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))

	code, _ := call(t, http.MethodPost, base+"/api/guests", `{"Name":"Ana Cruz","Email":""}`)
	if code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", code)
	}

	guests := listGuests(t, base)
	want := models.Guest{Name: "Ana Cruz", Email: "Pending"}
	if len(guests) != 1 || guests[0] != want {
		t.Errorf("guests = %+v, want [%+v]", guests, want)
	}
}

func TestEmailAcceptance(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))

	code, body := call(t, http.MethodPost, base+"/api/guest-requests", `{"Name":"Ben","Email":"bad-email"}`)
	if code != http.StatusBadRequest || body != `{"error":"Invalid email format"}` {
		t.Errorf("bad email: %d %s", code, body)
	}
	code, body = call(t, http.MethodPost, base+"/api/guests", `{"Name":"Cy","Email":"not-an-email"}`)
	if code != http.StatusBadRequest {
		t.Errorf("not-an-email: %d %s", code, body)
	}
	code, body = call(t, http.MethodPost, base+"/api/guest-requests", `{"Name":"Ben","Email":"a@b.co"}`)
	if code != http.StatusCreated {
		t.Errorf("a@b.co: %d %s", code, body)
	}
}

func TestEmailIsTrimmedBeforeCheck(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))

	code, body := call(t, http.MethodPost, base+"/api/guests", `{"Name":"Dee","Email":"  dee@b.co "}`)
	if code != http.StatusCreated {
		t.Fatalf("padded email: %d %s", code, body)
	}
	guests := listGuests(t, base)
	if len(guests) != 1 || guests[0].Email != "dee@b.co" {
		t.Errorf("guests = %+v, want stored email trimmed", guests)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))
	call(t, http.MethodPost, base+"/api/guests", `{"Name":"Nikki"}`)

	update := `{"Name":"Nikki","Email":"nikki@x.io","RSVP":"Yes","Message":"Congrats"}`
	for i := 0; i < 2; i++ {
		if code, body := call(t, http.MethodPut, base+"/api/guests", update); code != http.StatusOK {
			t.Fatalf("PUT #%d = %d %s", i+1, code, body)
		}
	}

	guests := listGuests(t, base)
	want := models.Guest{Name: "Nikki", Email: "nikki@x.io", RSVP: "Yes", Message: "Congrats"}
	if len(guests) != 1 || guests[0] != want {
		t.Errorf("guests = %+v, want [%+v]", guests, want)
	}
}

func TestUnknownKeyIsServerError(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))

	code, body := call(t, http.MethodDelete, base+"/api/guests", `{"Name":"Ghost"}`)
	if code != http.StatusInternalServerError || body != `{"error":"Failed to delete guest"}` {
		t.Errorf("delete unknown = %d %s", code, body)
	}
}

func TestEntourageRename(t *testing.T) {
	base := testutil.API(t, testutil.SheetStore(t))
	call(t, http.MethodPost, base+"/api/entourage", `{"Name":"Karl","RoleCategory":"Best Man","RoleTitle":"Best Man"}`)

	code, body := call(t, http.MethodPut, base+"/api/entourage", `{"originalName":"Karl","Name":"Carlo","RoleCategory":"Best Man","RoleTitle":"Best Man"}`)
	if code != http.StatusOK {
		t.Fatalf("PUT = %d %s", code, body)
	}

	_, body = call(t, http.MethodGet, base+"/api/entourage", "")
	var members []models.EntourageMember
	if err := json.Unmarshal([]byte(body), &members); err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].Name != "Carlo" {
		t.Errorf("members = %+v", members)
	}
}
