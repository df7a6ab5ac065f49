package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
)

// EntityRepository persists cached [models.Entity] name/link pairs.
//
// It implements [services.Locator] over the cached links.
type EntityRepository struct {
	db *sql.DB
}

// NewEntityRepository creates a new [EntityRepository] with the given database connection
func NewEntityRepository(db *sql.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// Create inserts a new entity into the database with generated ID and sequence
func (r *EntityRepository) Create(entity *models.Entity) error {
	if err := entity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if !shared.IsMBID(entity.MBID) {
		return fmt.Errorf("%w: %q is not an MBID", shared.ErrInvalidInput, entity.MBID)
	}

	sequence, err := NextSequence(r.db, "entities")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entity.ID = shared.GenerateID()
	entity.Sequence = sequence

	query := `
		INSERT INTO entities (id, sequence, name, mbid, variant, canonical, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, entity.ID, entity.Sequence, entity.Name, entity.MBID,
		entity.Variant, entity.Canonical, entity.CreatedAt, entity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert entity: %w", err)
	}

	return nil
}

// Get retrieves an entity by ID
func (r *EntityRepository) Get(id string) (*models.Entity, error) {
	query := `
		SELECT id, sequence, name, mbid, variant, canonical, created_at, updated_at
		FROM entities
		WHERE id = ?
	`

	entity, err := scanEntity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrEntityNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}
	return entity, nil
}

// Delete removes an entity by ID
func (r *EntityRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrEntityNotFound, id)
	}
	return nil
}

// List retrieves every cached entity ordered by sequence
func (r *EntityRepository) List() ([]*models.Entity, error) {
	query := `
		SELECT id, sequence, name, mbid, variant, canonical, created_at, updated_at
		FROM entities
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []*models.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}
	return entities, nil
}

// Links returns every cached entity as a [models.EntityLink], in sequence order.
func (r *EntityRepository) Links() ([]models.EntityLink, error) {
	entities, err := r.List()
	if err != nil {
		return nil, err
	}

	links := make([]models.EntityLink, 0, len(entities))
	for _, e := range entities {
		links = append(links, e.Link())
	}
	return links, nil
}

// SaveLinks caches links, updating the variant data of pairs already stored.
//
// Links without a valid MBID are skipped. Returns the number of new entities.
func (r *EntityRepository) SaveLinks(links []models.EntityLink) (int, error) {
	created := 0
	for _, link := range links {
		if link.Name == "" || !shared.IsMBID(link.ID) {
			continue
		}

		result, err := r.db.Exec(`
			UPDATE entities SET variant = ?, canonical = ?, updated_at = ?
			WHERE name = ? AND mbid = ?
		`, link.Variant, link.Canonical, time.Now(), link.Name, link.ID)
		if err != nil {
			return created, fmt.Errorf("failed to update entity: %w", err)
		}

		if n, err := result.RowsAffected(); err != nil {
			return created, fmt.Errorf("failed to get affected rows: %w", err)
		} else if n > 0 {
			continue
		}

		if err := r.Create(models.NewEntity(link)); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// Locate resolves name against the cached links.
func (r *EntityRepository) Locate(ctx context.Context, name string) (string, error) {
	links, err := r.Links()
	if err != nil {
		return "", err
	}

	id, ok := credits.ResolveEntity(links, name)
	if !ok {
		return "", fmt.Errorf("%w: %q", shared.ErrEntityNotFound, name)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	var e models.Entity
	err := row.Scan(&e.ID, &e.Sequence, &e.Name, &e.MBID, &e.Variant, &e.Canonical, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
