// Package export writes the guest data as CSV and XLSX files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AlexTLDR/wedding/internal/models"
)

// Lister fetches the four collections.
type Lister interface {
	ListGuests(ctx context.Context) ([]models.Guest, error)
	ListGuestRequests(ctx context.Context) ([]models.GuestRequest, error)
	ListEntourage(ctx context.Context) ([]models.EntourageMember, error)
	ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error)
}

// Snapshot is every collection read at one point in time.
type Snapshot struct {
	TakenAt           time.Time                 `json:"takenAt"`
	Guests            []models.Guest            `json:"guests"`
	GuestRequests     []models.GuestRequest     `json:"guestRequests"`
	Entourage         []models.EntourageMember  `json:"entourage"`
	PrincipalSponsors []models.PrincipalSponsor `json:"principalSponsors"`
}

// Collect reads all four collections. The reads are not atomic.
func Collect(ctx context.Context, l Lister) (Snapshot, error) {
	s := Snapshot{TakenAt: time.Now().UTC()}
	var err error
	if s.Guests, err = l.ListGuests(ctx); err != nil {
		return s, fmt.Errorf("failed to read guests: %w", err)
	}
	if s.GuestRequests, err = l.ListGuestRequests(ctx); err != nil {
		return s, fmt.Errorf("failed to read guest requests: %w", err)
	}
	if s.Entourage, err = l.ListEntourage(ctx); err != nil {
		return s, fmt.Errorf("failed to read entourage: %w", err)
	}
	if s.PrincipalSponsors, err = l.ListPrincipalSponsors(ctx); err != nil {
		return s, fmt.Errorf("failed to read principal sponsors: %w", err)
	}
	return s, nil
}

var guestHeader = []string{"Name", "Email", "RSVP", "Message"}

// guestRow formats a guest for a spreadsheet. Blank values show as "-".
func guestRow(g models.Guest) []string {
	return []string{
		dash(g.Name),
		dash(models.DisplayEmail(g.Email)),
		dash(g.RSVP),
		dash(strings.ReplaceAll(g.Message, "\n", " ")),
	}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// WriteGuestsCSV writes the guest list as CSV with a UTF-8 BOM so Excel
// picks the right encoding.
func WriteGuestsCSV(w io.Writer, guests []models.Guest) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(guestHeader); err != nil {
		return err
	}
	for _, g := range guests {
		if err := cw.Write(guestRow(g)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkbook writes one worksheet per collection.
func WriteWorkbook(w io.Writer, s Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"Guests", guestHeader, guestRows(s.Guests)},
		{"Guest Requests", []string{"Name", "Email", "Phone", "RSVP", "Message"}, requestRows(s.GuestRequests)},
		{"Entourage", []string{"Name", "Role Category", "Role Title", "Email"}, entourageRows(s.Entourage)},
		{"Principal Sponsors", []string{"Male Principal Sponsor", "Female Principal Sponsor"}, sponsorRows(s.PrincipalSponsors)},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sh.name, err)
		}

		if err := writeRows(f, sh.name, append([][]string{sh.header}, sh.rows...)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func guestRows(guests []models.Guest) [][]string {
	rows := make([][]string, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, guestRow(g))
	}
	return rows
}

func requestRows(reqs []models.GuestRequest) [][]string {
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{dash(r.Name), dash(models.DisplayEmail(r.Email)), dash(r.Phone), dash(r.RSVP), dash(r.Message)})
	}
	return rows
}

func entourageRows(members []models.EntourageMember) [][]string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{dash(m.Name), dash(m.RoleCategory), dash(m.RoleTitle), dash(models.DisplayEmail(m.Email))})
	}
	return rows
}

func sponsorRows(sponsors []models.PrincipalSponsor) [][]string {
	rows := make([][]string, 0, len(sponsors))
	for _, s := range sponsors {
		rows = append(rows, []string{dash(s.MalePrincipalSponsor), dash(s.FemalePrincipalSponsor)})
	}
	return rows
}
