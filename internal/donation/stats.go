// Package donation aggregates donation records across the congregant
// roster. Every function is a pure fold over in-memory values; totals are
// recomputed from scratch on each call.
package donation

import "github.com/shulsoft/gabbai/internal/model"

// Stats is the roster-wide donation summary.
type Stats struct {
	TotalUnpaid            float64 `json:"total_unpaid"`
	TotalPaid              float64 `json:"total_paid"`
	PrayersWithUnpaidCount int     `json:"prayers_with_unpaid_count"`
	UnpaidDonationsCount   int     `json:"unpaid_donations_count"`
}

// Unpaid returns the congregant's unpaid donations.
func Unpaid(p *model.Prayer) []model.Donation {
	var out []model.Donation
	for _, d := range p.Donations {
		if !d.Paid {
			out = append(out, d)
		}
	}
	return out
}

// Paid returns the congregant's paid donations.
func Paid(p *model.Prayer) []model.Donation {
	var out []model.Donation
	for _, d := range p.Donations {
		if d.Paid {
			out = append(out, d)
		}
	}
	return out
}

// TotalUnpaidAmount sums the congregant's unpaid donation amounts.
func TotalUnpaidAmount(p *model.Prayer) float64 {
	var total float64
	for _, d := range p.Donations {
		if !d.Paid {
			total += d.Amount
		}
	}
	return total
}

// Compute folds the whole roster into a Stats summary.
func Compute(prayers []model.Prayer) Stats {
	var s Stats
	for i := range prayers {
		p := &prayers[i]
		hasUnpaid := false
		for _, d := range p.Donations {
			if d.Paid {
				s.TotalPaid += d.Amount
			} else {
				s.TotalUnpaid += d.Amount
				s.UnpaidDonationsCount++
				hasUnpaid = true
			}
		}
		if hasUnpaid {
			s.PrayersWithUnpaidCount++
		}
	}
	return s
}

// AllPrayersFromCards flattens every card into its primary congregant
// followed by the children.
func AllPrayersFromCards(cards []model.PrayerCard) []model.Prayer {
	var prayers []model.Prayer
	for i := range cards {
		prayers = append(prayers, cards[i].Prayer)
		prayers = append(prayers, cards[i].Children...)
	}
	return prayers
}

// WithContext pairs a donation with the congregant and card it belongs to.
type WithContext struct {
	Donation model.Donation    `json:"donation"`
	Prayer   *model.Prayer     `json:"prayer"`
	Card     *model.PrayerCard `json:"card"`
	Overdue  bool              `json:"overdue"`
}

// AllWithContext lists every donation on the roster with its owner attached.
func AllWithContext(cards []model.PrayerCard) []WithContext {
	var out []WithContext
	for i := range cards {
		card := &cards[i]
		for _, d := range card.Prayer.Donations {
			out = append(out, WithContext{Donation: d, Prayer: &card.Prayer, Card: card, Overdue: d.Overdue()})
		}
		for j := range card.Children {
			child := &card.Children[j]
			for _, d := range child.Donations {
				out = append(out, WithContext{Donation: d, Prayer: child, Card: card, Overdue: d.Overdue()})
			}
		}
	}
	return out
}
