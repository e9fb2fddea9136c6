package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
)

func TestCompute(t *testing.T) {
	prayers := []model.Prayer{
		{
			ID: "p1",
			Donations: []model.Donation{
				{ID: "d1", Amount: 100, Paid: false},
				{ID: "d2", Amount: 50, Paid: true},
			},
		},
		{
			ID: "p2",
			Donations: []model.Donation{
				{ID: "d3", Amount: 25, Paid: false},
			},
		},
		{ID: "p3"},
	}

	s := Compute(prayers)
	assert.Equal(t, 125.0, s.TotalUnpaid)
	assert.Equal(t, 50.0, s.TotalPaid)
	assert.Equal(t, 2, s.PrayersWithUnpaidCount)
	assert.Equal(t, 2, s.UnpaidDonationsCount)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.TotalUnpaid)
	assert.Zero(t, s.TotalPaid)
	assert.Zero(t, s.PrayersWithUnpaidCount)
	assert.Zero(t, s.UnpaidDonationsCount)
}

func TestUnpaidPaidSplit(t *testing.T) {
	p := model.Prayer{
		Donations: []model.Donation{
			{ID: "d1", Paid: false},
			{ID: "d2", Paid: true},
			{ID: "d3", Paid: false},
		},
	}

	unpaid := Unpaid(&p)
	require.Len(t, unpaid, 2)
	assert.Equal(t, "d1", unpaid[0].ID)
	assert.Equal(t, "d3", unpaid[1].ID)

	paid := Paid(&p)
	require.Len(t, paid, 1)
	assert.Equal(t, "d2", paid[0].ID)

	assert.Equal(t, 0.0, TotalUnpaidAmount(&model.Prayer{}))
}

func TestAllPrayersFromCards(t *testing.T) {
	cards := []model.PrayerCard{
		{
			Prayer: model.Prayer{ID: "p1"},
			Children: []model.Prayer{
				{ID: "p1-a"}, {ID: "p1-b"},
			},
		},
		{Prayer: model.Prayer{ID: "p2"}},
	}

	prayers := AllPrayersFromCards(cards)
	require.Len(t, prayers, 4)
	assert.Equal(t, "p1", prayers[0].ID)
	assert.Equal(t, "p1-a", prayers[1].ID)
	assert.Equal(t, "p1-b", prayers[2].ID)
	assert.Equal(t, "p2", prayers[3].ID)
}

func TestAllWithContext(t *testing.T) {
	cards := []model.PrayerCard{
		{
			ID: "c1",
			Prayer: model.Prayer{
				ID:        "p1",
				Donations: []model.Donation{{ID: "d1", Amount: 18}},
			},
			Children: []model.Prayer{
				{
					ID:        "kid",
					Donations: []model.Donation{{ID: "d2", Amount: 36}},
				},
			},
		},
	}

	all := AllWithContext(cards)
	require.Len(t, all, 2)

	assert.Equal(t, "d1", all[0].Donation.ID)
	assert.Equal(t, "p1", all[0].Prayer.ID)
	assert.Equal(t, "c1", all[0].Card.ID)

	assert.Equal(t, "d2", all[1].Donation.ID)
	assert.Equal(t, "kid", all[1].Prayer.ID)
}

func TestAllWithContextOverdueFlag(t *testing.T) {
	longAgo := hebdate.New(5740, 7, 1)
	cards := []model.PrayerCard{
		{
			ID: "c1",
			Prayer: model.Prayer{
				ID: "p1",
				Donations: []model.Donation{
					{ID: "stale-unpaid", Amount: 18, HebrewDate: longAgo, Paid: false},
					{ID: "stale-paid", Amount: 36, HebrewDate: longAgo, Paid: true},
					{ID: "fresh-unpaid", Amount: 54, HebrewDate: hebdate.Now(), Paid: false},
				},
			},
		},
	}

	all := AllWithContext(cards)
	require.Len(t, all, 3)

	byID := make(map[string]WithContext)
	for _, wc := range all {
		byID[wc.Donation.ID] = wc
	}
	assert.True(t, byID["stale-unpaid"].Overdue)
	assert.False(t, byID["stale-paid"].Overdue)
	assert.False(t, byID["fresh-unpaid"].Overdue)
}
