package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type PickupLocationStore struct {
	db *sql.DB
}

func NewPickupLocationStore(db *sql.DB) *PickupLocationStore {
	return &PickupLocationStore{db: db}
}

const pickupLocationCols = `id, name, contact_name, city, street, phone_number, active`

func scanPickupLocation(scanner interface{ Scan(...any) error }) (*model.PickupLocation, error) {
	var l model.PickupLocation
	err := scanner.Scan(&l.ID, &l.Name, &l.ContactName, &l.City, &l.Street, &l.PhoneNumber, &l.Active)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *PickupLocationStore) Create(l model.PickupLocation) (*model.PickupLocation, error) {
	if l.ID == "" {
		l.ID = newID()
	}
	_, err := s.db.Exec(
		`INSERT INTO pickup_locations (`+pickupLocationCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.ContactName, l.City, l.Street, l.PhoneNumber, l.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pickup location: %w", err)
	}
	return s.GetByID(l.ID)
}

func (s *PickupLocationStore) GetByID(id string) (*model.PickupLocation, error) {
	row := s.db.QueryRow(`SELECT `+pickupLocationCols+` FROM pickup_locations WHERE id = ?`, id)
	l, err := scanPickupLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pickup location: %w", err)
	}
	return l, nil
}

func (s *PickupLocationStore) List(activeOnly bool) ([]model.PickupLocation, error) {
	query := `SELECT ` + pickupLocationCols + ` FROM pickup_locations`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list pickup locations: %w", err)
	}
	defer rows.Close()

	var locations []model.PickupLocation
	for rows.Next() {
		l, err := scanPickupLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pickup location: %w", err)
		}
		locations = append(locations, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pickup locations: %w", err)
	}
	return locations, nil
}

func (s *PickupLocationStore) Update(l model.PickupLocation) (*model.PickupLocation, error) {
	_, err := s.db.Exec(
		`UPDATE pickup_locations SET name = ?, contact_name = ?, city = ?, street = ?, phone_number = ?, active = ? WHERE id = ?`,
		l.Name, l.ContactName, l.City, l.Street, l.PhoneNumber, l.Active, l.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update pickup location: %w", err)
	}
	return s.GetByID(l.ID)
}

func (s *PickupLocationStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM pickup_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pickup location: %w", err)
	}
	return nil
}
