package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		want     model.Category
	}{
		{
			name:     "grocery store is food",
			merchant: "Whole Foods Market",
			want:     model.CategoryFood,
		},
		{
			name:     "restaurant is food",
			merchant: "Luigi's Restaurant",
			want:     model.CategoryFood,
		},
		{
			name:     "rideshare is travel",
			merchant: "UBER TRIP 8842",
			want:     model.CategoryTravel,
		},
		{
			name:     "gas station hits Bills before Transportation",
			merchant: "Shell Gas Station",
			want:     model.CategoryBills,
		},
		{
			name:     "streaming is entertainment",
			merchant: "Netflix.com",
			want:     model.CategoryEntertainment,
		},
		{
			name:     "pharmacy is healthcare",
			merchant: "CVS Pharmacy #1234",
			want:     model.CategoryHealthcare,
		},
		{
			name:     "bookstore is education",
			merchant: "Campus Book Center",
			want:     model.CategoryEducation,
		},
		{
			name:     "transit without gas keyword is transportation",
			merchant: "Metro Transit Authority",
			want:     model.CategoryTransportation,
		},
		{
			name:     "online retailer is shopping",
			merchant: "AMAZON MKTPLACE",
			want:     model.CategoryShopping,
		},
		{
			name:     "unmatched merchant falls through to Other",
			merchant: "xyz-unmatched-merchant",
			want:     model.CategoryOther,
		},
		{
			name:     "empty merchant is Other",
			merchant: "",
			want:     model.CategoryOther,
		},
	}

	classifier, err := New(DefaultRules())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(context.Background(), tt.merchant)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	classifier, err := New(DefaultRules())
	require.NoError(t, err)

	merchants := []string{
		"Whole Foods Market", "Shell Gas Station", "zzzzz", "12345", "!?#",
		"", "a", "GAS", "Bus", "theater of dreams", "unknown vendor llc",
	}
	for _, m := range merchants {
		got := classifier.Classify(context.Background(), m)
		assert.True(t, model.ValidCategory(string(got)), "merchant %q produced invalid category %q", m, got)
	}
}

type stubFallback struct {
	suggestion string
	err        error
	calls      int
}

func (s *stubFallback) SuggestCategory(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.suggestion, s.err
}

func TestClassifyFallback(t *testing.T) {
	tests := []struct {
		name      string
		fallback  *stubFallback
		merchant  string
		want      model.Category
		wantCalls int
	}{
		{
			name:      "fallback consulted only when rules miss",
			fallback:  &stubFallback{suggestion: "Healthcare"},
			merchant:  "Whole Foods Market",
			want:      model.CategoryFood,
			wantCalls: 0,
		},
		{
			name:      "fallback suggestion accepted when valid",
			fallback:  &stubFallback{suggestion: "Healthcare"},
			merchant:  "dr smith dental",
			want:      model.CategoryHealthcare,
			wantCalls: 1,
		},
		{
			name:      "unknown suggestion degrades to Other",
			fallback:  &stubFallback{suggestion: "Cryptocurrency"},
			merchant:  "unmatched",
			want:      model.CategoryOther,
			wantCalls: 1,
		},
		{
			name:      "fallback error degrades to Other",
			fallback:  &stubFallback{err: errors.New("api down")},
			merchant:  "unmatched",
			want:      model.CategoryOther,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier, err := New(DefaultRules(), WithFallback(tt.fallback))
			require.NoError(t, err)

			got := classifier.Classify(context.Background(), tt.merchant)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, tt.fallback.calls)
		})
	}
}

func TestProcessTransactions(t *testing.T) {
	classifier, err := New(DefaultRules())
	require.NoError(t, err)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{Date: date, Merchant: "Whole Foods Market", Amount: 82.50},
		{Date: date, Merchant: "Shell Gas Station", Amount: 45.00},
		{Date: date, Merchant: "mystery vendor", Amount: 12.00},
	}

	got, err := classifier.ProcessTransactions(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, model.CategoryFood, got[0].Category)
	assert.Equal(t, model.CategoryBills, got[1].Category)
	assert.Equal(t, model.CategoryOther, got[2].Category)

	// Input collection is untouched.
	for _, txn := range txns {
		assert.Empty(t, txn.Category)
	}
}

func TestProcessTransactionsValidation(t *testing.T) {
	classifier, err := New(DefaultRules())
	require.NoError(t, err)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{
			name: "missing date",
			txns: []model.Transaction{{Merchant: "Cafe", Amount: 5}},
		},
		{
			name: "missing merchant",
			txns: []model.Transaction{{Date: date, Amount: 5}},
		},
		{
			name: "negative amount",
			txns: []model.Transaction{{Date: date, Merchant: "Cafe", Amount: -5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classifier.ProcessTransactions(context.Background(), tt.txns)
			require.Error(t, err)

			var validationErr *common.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestProcessTransactionsProgress(t *testing.T) {
	var progress []int
	classifier, err := New(DefaultRules(), WithProgress(func(done, total int) {
		assert.Equal(t, 2, total)
		progress = append(progress, done)
	}))
	require.NoError(t, err)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = classifier.ProcessTransactions(context.Background(), []model.Transaction{
		{Date: date, Merchant: "Cafe", Amount: 5},
		{Date: date, Merchant: "Cinema movie", Amount: 15},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, progress)
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New([]Rule{{Category: model.CategoryOther, Pattern: `[unclosed`}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile pattern")
}
