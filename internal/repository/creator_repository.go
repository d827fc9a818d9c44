package repository

import (
	"database/sql"

	"github.com/agenciacriadores/crm-backend/internal/model"
)

// CreatorRepositoryInterface defines methods used by the controller layer
type CreatorRepositoryInterface interface {
	GetByID(id string) (*model.Creator, error)
	ListActive() ([]model.Creator, error)
}

// CreatorRepository is the concrete implementation
type CreatorRepository struct {
	DB *sql.DB
}

// GetByID fetches a creator by ID
func (r *CreatorRepository) GetByID(id string) (*model.Creator, error) {
	query := `
        SELECT id, name, instagram, city, followers, status
        FROM creators
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Creator
	if err := row.Scan(&c.ID, &c.Name, &c.Instagram, &c.City, &c.Followers, &c.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListActive fetches all active creators (used by the swap/add pickers)
func (r *CreatorRepository) ListActive() ([]model.Creator, error) {
	query := `
        SELECT id, name, instagram, city, followers, status
        FROM creators
        WHERE status = 'Ativo'
        ORDER BY name
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := []model.Creator{}
	for rows.Next() {
		var c model.Creator
		if err := rows.Scan(&c.ID, &c.Name, &c.Instagram, &c.City, &c.Followers, &c.Status); err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}
	return creators, nil
}

var _ CreatorRepositoryInterface = (*CreatorRepository)(nil)
