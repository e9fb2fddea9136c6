package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

// PrayerCardStore persists prayer cards as aggregates: the card row, its
// prayer rows, and each prayer's events and donations are read and written
// together.
type PrayerCardStore struct {
	db *sql.DB
}

func NewPrayerCardStore(db *sql.DB) *PrayerCardStore {
	return &PrayerCardStore{db: db}
}

const prayerCols = `id, card_id, is_child, first_name, last_name, birth_year, birth_month, birth_day, phone_number, email, notes, created_at, updated_at`

func scanPrayer(scanner interface{ Scan(...any) error }) (*model.Prayer, bool, error) {
	var p model.Prayer
	var isChild bool
	var by, bm, bd sql.NullInt64
	err := scanner.Scan(&p.ID, &p.CardID, &isChild, &p.FirstName, &p.LastName,
		&by, &bm, &bd, &p.PhoneNumber, &p.Email, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, false, err
	}
	p.HebrewBirthDate = dateFromCols(by, bm, bd)
	return &p, isChild, nil
}

const donationCols = `id, prayer_id, amount, hebrew_year, hebrew_month, hebrew_day, paid, notes, created_by, created_at`

func scanDonation(scanner interface{ Scan(...any) error }) (*model.Donation, error) {
	var d model.Donation
	var y, m, dy sql.NullInt64
	err := scanner.Scan(&d.ID, &d.PrayerID, &d.Amount, &y, &m, &dy, &d.Paid, &d.Notes, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.HebrewDate = dateFromCols(y, m, dy)
	return &d, nil
}

const eventCols = `id, prayer_id, type_id, hebrew_year, hebrew_month, hebrew_day, notes`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.PrayerEvent, error) {
	var e model.PrayerEvent
	var y, m, d sql.NullInt64
	err := scanner.Scan(&e.ID, &e.PrayerID, &e.TypeID, &y, &m, &d, &e.Notes)
	if err != nil {
		return nil, err
	}
	e.HebrewDate = dateFromCols(y, m, d)
	return &e, nil
}

func (s *PrayerCardStore) Create(card model.PrayerCard) (*model.PrayerCard, error) {
	if card.ID == "" {
		card.ID = newID()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO prayer_cards (id, email) VALUES (?, ?)`, card.ID, card.Email); err != nil {
		return nil, fmt.Errorf("insert prayer card: %w", err)
	}
	if err := insertPrayers(tx, card); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.GetByID(card.ID)
}

func insertPrayers(tx *sql.Tx, card model.PrayerCard) error {
	insert := func(p model.Prayer, isChild bool) error {
		if p.ID == "" {
			p.ID = newID()
		}
		y, m, d := dateArgs(p.HebrewBirthDate)
		_, err := tx.Exec(
			`INSERT INTO prayers (id, card_id, is_child, first_name, last_name, birth_year, birth_month, birth_day, phone_number, email, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, card.ID, isChild, p.FirstName, p.LastName, y, m, d, p.PhoneNumber, p.Email, p.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert prayer: %w", err)
		}
		for _, ev := range p.Events {
			if ev.ID == "" {
				ev.ID = newID()
			}
			ey, em, ed := dateArgs(ev.HebrewDate)
			_, err := tx.Exec(
				`INSERT INTO prayer_events (id, prayer_id, type_id, hebrew_year, hebrew_month, hebrew_day, notes)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				ev.ID, p.ID, ev.TypeID, ey, em, ed, ev.Notes,
			)
			if err != nil {
				return fmt.Errorf("insert prayer event: %w", err)
			}
		}
		for _, dn := range p.Donations {
			if dn.ID == "" {
				dn.ID = newID()
			}
			dy, dm, dd := dateArgs(dn.HebrewDate)
			_, err := tx.Exec(
				`INSERT INTO donations (id, prayer_id, amount, hebrew_year, hebrew_month, hebrew_day, paid, notes, created_by)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				dn.ID, p.ID, dn.Amount, dy, dm, dd, dn.Paid, dn.Notes, dn.CreatedBy,
			)
			if err != nil {
				return fmt.Errorf("insert donation: %w", err)
			}
		}
		return nil
	}

	if err := insert(card.Prayer, false); err != nil {
		return err
	}
	for _, child := range card.Children {
		if err := insert(child, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *PrayerCardStore) GetByID(id string) (*model.PrayerCard, error) {
	var card model.PrayerCard
	row := s.db.QueryRow(`SELECT id, email, created_at, updated_at FROM prayer_cards WHERE id = ?`, id)
	err := row.Scan(&card.ID, &card.Email, &card.CreatedAt, &card.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get prayer card: %w", err)
	}

	if err := s.loadPrayers(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *PrayerCardStore) loadPrayers(card *model.PrayerCard) error {
	rows, err := s.db.Query(`SELECT `+prayerCols+` FROM prayers WHERE card_id = ? ORDER BY is_child, created_at`, card.ID)
	if err != nil {
		return fmt.Errorf("list prayers: %w", err)
	}
	defer rows.Close()

	var prayers []model.Prayer
	var childFlags []bool
	for rows.Next() {
		p, isChild, err := scanPrayer(rows)
		if err != nil {
			return fmt.Errorf("scan prayer: %w", err)
		}
		prayers = append(prayers, *p)
		childFlags = append(childFlags, isChild)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate prayers: %w", err)
	}

	for i := range prayers {
		if err := s.loadPrayerDetails(&prayers[i]); err != nil {
			return err
		}
		if childFlags[i] {
			card.Children = append(card.Children, prayers[i])
		} else {
			card.Prayer = prayers[i]
		}
	}
	return nil
}

func (s *PrayerCardStore) loadPrayerDetails(p *model.Prayer) error {
	rows, err := s.db.Query(`SELECT `+eventCols+` FROM prayer_events WHERE prayer_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("list prayer events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return fmt.Errorf("scan prayer event: %w", err)
		}
		p.Events = append(p.Events, *ev)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate prayer events: %w", err)
	}

	drows, err := s.db.Query(`SELECT `+donationCols+` FROM donations WHERE prayer_id = ? ORDER BY created_at`, p.ID)
	if err != nil {
		return fmt.Errorf("list donations: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		d, err := scanDonation(drows)
		if err != nil {
			return fmt.Errorf("scan donation: %w", err)
		}
		p.Donations = append(p.Donations, *d)
	}
	if err := drows.Err(); err != nil {
		return fmt.Errorf("iterate donations: %w", err)
	}
	return nil
}

func (s *PrayerCardStore) List() ([]model.PrayerCard, error) {
	rows, err := s.db.Query(`SELECT id, email, created_at, updated_at FROM prayer_cards ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list prayer cards: %w", err)
	}
	defer rows.Close()

	var cards []model.PrayerCard
	for rows.Next() {
		var card model.PrayerCard
		if err := rows.Scan(&card.ID, &card.Email, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prayer card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prayer cards: %w", err)
	}

	for i := range cards {
		if err := s.loadPrayers(&cards[i]); err != nil {
			return nil, err
		}
	}
	return cards, nil
}

// Update replaces the whole aggregate: the card row is updated in place and
// the prayer rows are rewritten, so removed children and events disappear.
func (s *PrayerCardStore) Update(card model.PrayerCard) (*model.PrayerCard, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE prayer_cards SET email = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, card.Email, card.ID)
	if err != nil {
		return nil, fmt.Errorf("update prayer card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	if _, err := tx.Exec(`DELETE FROM prayers WHERE card_id = ?`, card.ID); err != nil {
		return nil, fmt.Errorf("clear prayers: %w", err)
	}
	if err := insertPrayers(tx, card); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.GetByID(card.ID)
}

func (s *PrayerCardStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM prayer_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete prayer card: %w", err)
	}
	return nil
}

func (s *PrayerCardStore) AddDonation(prayerID string, d model.Donation) (*model.Donation, error) {
	if d.ID == "" {
		d.ID = newID()
	}
	y, m, dy := dateArgs(d.HebrewDate)
	_, err := s.db.Exec(
		`INSERT INTO donations (id, prayer_id, amount, hebrew_year, hebrew_month, hebrew_day, paid, notes, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, prayerID, d.Amount, y, m, dy, d.Paid, d.Notes, d.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+donationCols+` FROM donations WHERE id = ?`, d.ID)
	out, err := scanDonation(row)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return out, nil
}

func (s *PrayerCardStore) SetDonationPaid(donationID string, paid bool) error {
	_, err := s.db.Exec(`UPDATE donations SET paid = ? WHERE id = ?`, paid, donationID)
	if err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	return nil
}

func (s *PrayerCardStore) DeleteDonation(donationID string) error {
	_, err := s.db.Exec(`DELETE FROM donations WHERE id = ?`, donationID)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	return nil
}
