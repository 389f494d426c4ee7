// Package ledger menghitung tagihan, pembayaran dan denda per student session.
// Fungsi di file ini murni: tidak menyentuh DB dan tidak membaca jam sistem.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/dbtime"
)

var hundred = decimal.NewFromInt(100)

// Line satu FeeGroupType yang dibebankan ke satu student session.
type Line struct {
	StudentSessionID uuid.UUID
	FeeGroupTypeID   uuid.UUID
	Amount           decimal.Decimal
	DueDate          *time.Time
	FineType         string
	FinePercent      decimal.Decimal
	FineAmount       decimal.Decimal
}

type Payment struct {
	StudentSessionID uuid.UUID
	Amount           decimal.Decimal
	Discount         decimal.Decimal
	Fine             decimal.Decimal
}

// Totals: TotalDiscount & TotalFineCollected hanya informasi, tidak mengurangi due.
type Totals struct {
	TotalAssigned      decimal.Decimal `json:"totalAssigned"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	TotalDue           decimal.Decimal `json:"totalDue"`
	TotalFine          decimal.Decimal `json:"totalFine"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	TotalDiscount      decimal.Decimal `json:"totalDiscount"`
	TotalFineCollected decimal.Decimal `json:"totalFineCollected"`
}

// Overdue: due date sebelum tanggal evaluasi. Tanpa due date tidak pernah overdue.
func Overdue(l Line, now time.Time) bool {
	return l.DueDate != nil && dbtime.DateOnly(*l.DueDate).Before(dbtime.DateOnly(now))
}

// Fine kontribusi denda satu line. Tidak dikurangi pembayaran parsial.
func Fine(l Line, now time.Time) decimal.Decimal {
	if !Overdue(l, now) {
		return decimal.Zero
	}
	switch l.FineType {
	case model.FinePercentage:
		return l.Amount.Mul(l.FinePercent).Div(hundred).Round(2)
	case model.FineFixed:
		return l.FineAmount
	default:
		return decimal.Zero
	}
}

// Compute totals untuk sekumpulan line dan payment (biasanya satu student session).
func Compute(lines []Line, payments []Payment, now time.Time) Totals {
	var out Totals
	for _, l := range lines {
		out.TotalAssigned = out.TotalAssigned.Add(l.Amount)
		out.TotalFine = out.TotalFine.Add(Fine(l, now))
	}
	for _, p := range payments {
		out.TotalPaid = out.TotalPaid.Add(p.Amount)
		out.TotalDiscount = out.TotalDiscount.Add(p.Discount)
		out.TotalFineCollected = out.TotalFineCollected.Add(p.Fine)
	}
	out.TotalDue = out.TotalAssigned.Sub(out.TotalPaid)
	out.GrandTotal = out.TotalDue.Add(out.TotalFine)
	return out
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		TotalAssigned:      t.TotalAssigned.Add(o.TotalAssigned),
		TotalPaid:          t.TotalPaid.Add(o.TotalPaid),
		TotalDue:           t.TotalDue.Add(o.TotalDue),
		TotalFine:          t.TotalFine.Add(o.TotalFine),
		GrandTotal:         t.GrandTotal.Add(o.GrandTotal),
		TotalDiscount:      t.TotalDiscount.Add(o.TotalDiscount),
		TotalFineCollected: t.TotalFineCollected.Add(o.TotalFineCollected),
	}
}

// Summarize menjumlahkan totals per session jadi ringkasan satu student.
func Summarize(per []Totals) Totals {
	var out Totals
	for _, t := range per {
		out = out.Add(t)
	}
	return out
}

// HasDue dipakai filter onlyDue.
func (t Totals) HasDue() bool { return t.GrandTotal.IsPositive() }
