package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/AlexTLDR/wedding/internal/models"
)

type fixedLister struct{}

func (fixedLister) ListGuests(ctx context.Context) ([]models.Guest, error) {
	return []models.Guest{
		{Name: "Nikki", Email: "nikki@x.io", RSVP: "Yes", Message: "See you\nthere"},
		{Name: "Ana Cruz", Email: models.EmailPending},
	}, nil
}

func (fixedLister) ListGuestRequests(ctx context.Context) ([]models.GuestRequest, error) {
	return []models.GuestRequest{{Name: "Ben", Email: "ben@x.io", Phone: "+639171234567"}}, nil
}

func (fixedLister) ListEntourage(ctx context.Context) ([]models.EntourageMember, error) {
	return []models.EntourageMember{{Name: "Karl", RoleCategory: "Best Man", RoleTitle: "Best Man"}}, nil
}

func (fixedLister) ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error) {
	return []models.PrincipalSponsor{{MalePrincipalSponsor: "Mr. Reyes"}}, nil
}

func TestWriteGuestsCSV(t *testing.T) {
	snap, err := Collect(context.Background(), fixedLister{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteGuestsCSV(&buf, snap.Guests); err != nil {
		t.Fatalf("WriteGuestsCSV() error = %v", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("missing UTF-8 BOM")
	}
	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{"Name", "Email", "RSVP", "Message"},
		{"Nikki", "nikki@x.io", "Yes", "See you there"},
		{"Ana Cruz", "-", "-", "-"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestWriteWorkbook(t *testing.T) {
	snap, err := Collect(context.Background(), fixedLister{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, snap); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	wantSheets := []string{"Guests", "Guest Requests", "Entourage", "Principal Sponsors"}
	got := f.GetSheetList()
	if len(got) != len(wantSheets) {
		t.Fatalf("sheets = %v, want %v", got, wantSheets)
	}
	for i := range wantSheets {
		if got[i] != wantSheets[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], wantSheets[i])
		}
	}

	rows, err := f.GetRows("Guest Requests")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][2] != "+639171234567" {
		t.Errorf("Guest Requests rows = %v", rows)
	}
	if v, _ := f.GetCellValue("Principal Sponsors", "B2"); v != "-" {
		t.Errorf("B2 = %q, want -", v)
	}
}
