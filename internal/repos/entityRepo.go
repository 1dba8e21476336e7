package repos

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/hadash/internal/models"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS entity (
    entity_id VARCHAR(255) PRIMARY KEY,
    domain TEXT,
    name TEXT,
    state TEXT,
    attributes TEXT,     -- json
    last_changed TIMESTAMP,
    last_updated TIMESTAMP,
    saved_time TIMESTAMP
  );

  CREATE TABLE IF NOT EXISTS room (
    entity_id VARCHAR(255) PRIMARY KEY,
    name TEXT NOT NULL
  );
`

type EntityRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewEntityRepo(logger *log.Logger, db *sql.DB) (*EntityRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising entity schema: %w", err)
	}

	return &EntityRepo{logger: logger, db: db}, nil
}

// stores the snapshots, replacing any previously stored snapshot of the same entity
func (r *EntityRepo) Save(entities []models.Entity) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error saving entities: %w", err)
	}
	defer tx.Rollback()

	if err := saveEntities(tx, entities); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Error saving entities: %w", err)
	}

	return nil
}

// stores exactly these snapshots, dropping every other saved entity
func (r *EntityRepo) Replace(entities []models.Entity) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error replacing entities: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entity"); err != nil {
		return fmt.Errorf("Error clearing entities: %w", err)
	}
	if err := saveEntities(tx, entities); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Error replacing entities: %w", err)
	}

	return nil
}

func saveEntities(tx *sql.Tx, entities []models.Entity) error {
	now := time.Now()
	for _, entity := range entities {
		attrs, err := json.Marshal(entity.Attributes)
		if err != nil {
			return fmt.Errorf("Error encoding attributes of %s: %w", entity.ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO entity
      (entity_id, domain, name, state, attributes, last_changed, last_updated, saved_time)
     VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
     ON CONFLICT(entity_id) DO UPDATE SET
       domain = excluded.domain,
       name = excluded.name,
       state = excluded.state,
       attributes = excluded.attributes,
       last_changed = excluded.last_changed,
       last_updated = excluded.last_updated,
       saved_time = excluded.saved_time;`,
			entity.ID,
			entity.Domain(),
			entity.DisplayName(),
			entity.State,
			string(attrs),
			entity.LastChanged,
			entity.LastUpdated,
			now,
		)
		if err != nil {
			return fmt.Errorf("Error saving entity (%s): %w", entity.ID, err)
		}
	}
	return nil
}

func (r *EntityRepo) Delete(entityID string) error {
	_, err := r.db.Exec("DELETE FROM entity WHERE entity_id = $1", entityID)
	if err != nil {
		return fmt.Errorf("Error deleting entity (%s): %w", entityID, err)
	}
	return nil
}

// the last saved snapshot of every entity, ordered by id
func (r *EntityRepo) GetAll() ([]models.Entity, error) {
	rows, err := r.db.Query(`
    SELECT entity_id, state, attributes, last_changed, last_updated
    FROM entity
    ORDER BY entity_id`)
	if err != nil {
		return nil, fmt.Errorf("Error reading entities: %w", err)
	}
	defer rows.Close()

	entities := []models.Entity{}
	for rows.Next() {
		var (
			e     models.Entity
			attrs string
		)
		if err := rows.Scan(&e.ID, &e.State, &attrs, &e.LastChanged, &e.LastUpdated); err != nil {
			return nil, fmt.Errorf("Error reading entity: %w", err)
		}
		if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
			r.logger.Warn("Ignoring stored entity with unreadable attributes", "entity", e.ID, "err", err)
			continue
		}
		entities = append(entities, e)
	}

	return entities, rows.Err()
}

func (r *EntityRepo) SetRoom(entityID string, room string) error {
	var err error
	if room == "" {
		_, err = r.db.Exec("DELETE FROM room WHERE entity_id = $1", entityID)
	} else {
		_, err = r.db.Exec(
			`INSERT INTO room (entity_id, name) VALUES ($1, $2)
       ON CONFLICT(entity_id) DO UPDATE SET name = excluded.name`, entityID, room)
	}
	if err != nil {
		return fmt.Errorf("Error setting room of (%s) to %q: %w", entityID, room, err)
	}
	return nil
}

// only sets rooms for entities that don't have one yet, so runtime edits survive restarts
func (r *EntityRepo) SeedRooms(rooms map[string]string) error {
	for entityID, room := range rooms {
		_, err := r.db.Exec(
			"INSERT INTO room (entity_id, name) VALUES ($1, $2) ON CONFLICT(entity_id) DO NOTHING", entityID, room)
		if err != nil {
			return fmt.Errorf("Error seeding room of (%s): %w", entityID, err)
		}
	}
	return nil
}

func (r *EntityRepo) GetRooms() (map[string]string, error) {
	rows, err := r.db.Query("SELECT entity_id, name FROM room")
	if err != nil {
		return nil, fmt.Errorf("Error reading rooms: %w", err)
	}
	defer rows.Close()

	rooms := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("Error reading room: %w", err)
		}
		rooms[id] = name
	}
	return rooms, rows.Err()
}
