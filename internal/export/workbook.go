// Package export renders reporting snapshots as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in workbook order.
const (
	SheetSummary   = "Summary"
	SheetUsers     = "Users"
	SheetPurchases = "Purchases"
	SheetLogins    = "Logins"
)

const timeLayout = "2006-01-02 15:04:05"

// FileName returns the download name for a snapshot taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("telecom-report-%s.xlsx", t.UTC().Format("20060102-150405"))
}

// Write encodes snap as an XLSX workbook into w.
func Write(w io.Writer, snap *model.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Workbook builds the in-memory workbook. The caller closes it.
func Workbook(snap *model.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	b := &builder{f: f, header: header}
	b.summary(snap)
	b.users(snap.Users)
	b.purchases(snap.Purchases)
	b.logins(snap.Logins)
	if b.err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", b.err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// builder keeps the first error so sheet code stays linear.
type builder struct {
	f      *excelize.File
	header int
	err    error
}

func (b *builder) sheet(name string, columns []string) {
	if b.err != nil {
		return
	}
	if name != SheetSummary {
		if _, err := b.f.NewSheet(name); err != nil {
			b.err = err
			return
		}
	}
	b.row(name, 1, toAny(columns))
	if b.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetCellStyle(name, "A1", last, b.header)
}

func (b *builder) row(name string, n int, values []any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetSheetRow(name, cell, &values)
}

func (b *builder) summary(snap *model.Snapshot) {
	b.sheet(SheetSummary, []string{"Metric", "Value"})
	b.row(SheetSummary, 2, []any{"Generated at", snap.GeneratedAt.UTC().Format(timeLayout)})
	b.row(SheetSummary, 3, []any{"Total purchases", snap.Report.PurchaseCount})
	b.row(SheetSummary, 4, []any{"Total revenue", snap.Report.TotalRevenue})

	b.row(SheetSummary, 6, []any{"Plan", "Purchases"})
	for i, pc := range rankPlans(snap.Report.PopularPlans) {
		b.row(SheetSummary, 7+i, []any{pc.name, pc.count})
	}
}

func (b *builder) users(users []model.UserSummary) {
	b.sheet(SheetUsers, []string{"ID", "Full name", "Email", "Role"})
	for i, u := range users {
		b.row(SheetUsers, i+2, []any{u.ID, u.FullName, u.Email, string(u.Role)})
	}
}

func (b *builder) purchases(purchases []model.Purchase) {
	b.sheet(SheetPurchases, []string{"ID", "Customer", "Email", "Plan", "Price", "Purchased at", "Expires at"})
	for i, p := range purchases {
		b.row(SheetPurchases, i+2, []any{
			p.ID,
			p.UserFullName,
			p.UserEmail,
			p.PlanName,
			p.Price,
			p.PurchasedAt.UTC().Format(timeLayout),
			p.ExpiresAt.UTC().Format(timeLayout),
		})
	}
}

func (b *builder) logins(events []model.LoginEvent) {
	b.sheet(SheetLogins, []string{"ID", "User", "Logged at"})
	for i, e := range events {
		b.row(SheetLogins, i+2, []any{e.ID, e.UserFullName, e.LoggedAt.UTC().Format(timeLayout)})
	}
}

type planCount struct {
	name  string
	count int
}

// rankPlans orders plans by purchase count, then by name.
func rankPlans(counts map[string]int) []planCount {
	out := make([]planCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, planCount{name: name, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
