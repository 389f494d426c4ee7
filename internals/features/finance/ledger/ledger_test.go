package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/fees/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

var now = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func TestTuitionScenario(t *testing.T) {
	ss := uuid.New()
	lines := []Line{{
		StudentSessionID: ss,
		Amount:           d("5000"),
		DueDate:          day("2026-09-01"),
		FineType:         model.FinePercentage,
		FinePercent:      d("10"),
	}}
	payments := []Payment{{StudentSessionID: ss, Amount: d("2000")}}

	got := Compute(lines, payments, now)
	assert.True(t, d("5000").Equal(got.TotalAssigned))
	assert.True(t, d("2000").Equal(got.TotalPaid))
	assert.True(t, d("3000").Equal(got.TotalDue))
	assert.True(t, d("500").Equal(got.TotalFine))
	assert.True(t, d("3500").Equal(got.GrandTotal))
}

func TestFinePolicies(t *testing.T) {
	base := Line{Amount: d("1000"), FinePercent: d("2.5"), FineAmount: d("75")}

	cases := []struct {
		name string
		due  *time.Time
		typ  string
		want string
	}{
		{"percentage overdue", day("2026-10-17"), model.FinePercentage, "25"},
		{"fixed overdue", day("2026-01-01"), model.FineFixed, "75"},
		{"none overdue", day("2026-01-01"), model.FineNone, "0"},
		{"due today is not overdue", day("2026-10-18"), model.FineFixed, "0"},
		{"future", day("2027-01-01"), model.FinePercentage, "0"},
		{"no due date", nil, model.FineFixed, "0"},
	}
	for _, tc := range cases {
		l := base
		l.DueDate, l.FineType = tc.due, tc.typ
		assert.True(t, d(tc.want).Equal(Fine(l, now)), "%s: got %s", tc.name, Fine(l, now))
	}
}

func TestFineIgnoresPartialPayment(t *testing.T) {
	lines := []Line{
		{Amount: d("300"), DueDate: day("2026-01-10"), FineType: model.FineFixed, FineAmount: d("20")},
		{Amount: d("200"), DueDate: day("2026-02-10"), FineType: model.FineFixed, FineAmount: d("20")},
	}
	got := Compute(lines, []Payment{{Amount: d("450")}}, now)
	assert.True(t, d("40").Equal(got.TotalFine))
	assert.True(t, d("90").Equal(got.GrandTotal))
}

func TestOverpaymentIsNotClamped(t *testing.T) {
	got := Compute([]Line{{Amount: d("100")}}, []Payment{{Amount: d("150"), Discount: d("5"), Fine: d("3")}}, now)
	assert.True(t, d("-50").Equal(got.TotalDue))
	assert.True(t, d("-50").Equal(got.GrandTotal))
	assert.True(t, d("5").Equal(got.TotalDiscount))
	assert.True(t, d("3").Equal(got.TotalFineCollected))
	assert.False(t, got.HasDue())
}

func TestEmptyInputsYieldZeros(t *testing.T) {
	got := Compute(nil, nil, now)
	assert.True(t, got.GrandTotal.IsZero())
	assert.True(t, Summarize(nil).TotalAssigned.IsZero())
}

// totalDue = totalAssigned - totalPaid untuk kombinasi acak, dan Summarize aditif.
func TestLedgerAdditivityProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fineTypes := []string{model.FineNone, model.FineFixed, model.FinePercentage}

	for iter := 0; iter < 200; iter++ {
		var per []Totals
		var allLines []Line
		var allPays []Payment
		for s := 0; s < 1+rng.Intn(3); s++ {
			var lines []Line
			for i := 0; i < rng.Intn(6); i++ {
				due := now.AddDate(0, 0, rng.Intn(60)-30)
				lines = append(lines, Line{
					Amount:      decimal.New(rng.Int63n(1_000_000), -2),
					DueDate:     &due,
					FineType:    fineTypes[rng.Intn(len(fineTypes))],
					FinePercent: decimal.New(rng.Int63n(2000), -2),
					FineAmount:  decimal.New(rng.Int63n(10_000), -2),
				})
			}
			var pays []Payment
			for i := 0; i < rng.Intn(5); i++ {
				pays = append(pays, Payment{Amount: decimal.New(rng.Int63n(400_000)-50_000, -2)})
			}

			tot := Compute(lines, pays, now)
			assigned, paid := decimal.Zero, decimal.Zero
			for _, l := range lines {
				assigned = assigned.Add(l.Amount)
			}
			for _, p := range pays {
				paid = paid.Add(p.Amount)
			}
			assert.True(t, assigned.Sub(paid).Equal(tot.TotalDue))
			assert.True(t, tot.TotalDue.Add(tot.TotalFine).Equal(tot.GrandTotal))

			per = append(per, tot)
			allLines = append(allLines, lines...)
			allPays = append(allPays, pays...)
		}

		sum := Summarize(per)
		flat := Compute(allLines, allPays, now)
		assert.True(t, flat.TotalDue.Equal(sum.TotalDue))
		assert.True(t, flat.TotalFine.Equal(sum.TotalFine))
		assert.True(t, flat.GrandTotal.Equal(sum.GrandTotal))
	}
}
