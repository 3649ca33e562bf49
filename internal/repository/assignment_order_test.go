package repository

import (
	"testing"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
)

func tp(t time.Time) *time.Time { return &t }

func TestSortAssignments(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   []entity.ClientPriceBookAssignment
		want []string
	}{
		{
			name: "default assignments first",
			in: []entity.ClientPriceBookAssignment{
				{ID: "plain", EffectiveDate: tp(base.AddDate(0, 6, 0))},
				{ID: "default", IsDefault: true, EffectiveDate: tp(base)},
			},
			want: []string{"default", "plain"},
		},
		{
			name: "most recent effective date first",
			in: []entity.ClientPriceBookAssignment{
				{ID: "old", EffectiveDate: tp(base)},
				{ID: "new", EffectiveDate: tp(base.AddDate(1, 0, 0))},
			},
			want: []string{"new", "old"},
		},
		{
			name: "unset effective date sorts last",
			in: []entity.ClientPriceBookAssignment{
				{ID: "unset"},
				{ID: "dated", EffectiveDate: tp(base)},
			},
			want: []string{"dated", "unset"},
		},
		{
			name: "created first wins the final tie",
			in: []entity.ClientPriceBookAssignment{
				{ID: "later", EffectiveDate: tp(base), CreatedAt: base.Add(time.Hour)},
				{ID: "earlier", EffectiveDate: tp(base), CreatedAt: base},
			},
			want: []string{"earlier", "later"},
		},
		{
			name: "full ordering",
			in: []entity.ClientPriceBookAssignment{
				{ID: "no-date", CreatedAt: base},
				{ID: "spring", EffectiveDate: tp(base.AddDate(0, 3, 0)), CreatedAt: base.Add(time.Hour)},
				{ID: "default", IsDefault: true, CreatedAt: base.Add(2 * time.Hour)},
				{ID: "winter", EffectiveDate: tp(base), CreatedAt: base},
			},
			want: []string{"default", "spring", "winter", "no-date"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sortAssignments(tc.in)
			for i, want := range tc.want {
				if tc.in[i].ID != want {
					t.Fatalf("position %d = %q, want %q (order %v)", i, tc.in[i].ID, want, ids(tc.in))
				}
			}
		})
	}
}

func ids(assignments []entity.ClientPriceBookAssignment) []string {
	out := make([]string, len(assignments))
	for i, a := range assignments {
		out[i] = a.ID
	}
	return out
}
