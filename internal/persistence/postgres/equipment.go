package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// EquipmentRepository provides Postgres-backed persistence for the
// equipment inventory.
type EquipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository constructs an EquipmentRepository.
func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

const equipmentColumns = `equipment_id, name, identifier, location, status, last_maintenance_date, notes, created_at, updated_at`

// Create inserts a new inventory row.
func (r *EquipmentRepository) Create(ctx context.Context, equipment domain.Equipment) error {
	const stmt = `INSERT INTO equipment (equipment_id, name, identifier, location, status, last_maintenance_date, notes, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.pool.Exec(ctx, stmt,
		equipment.ID, equipment.Name, equipment.Identifier, equipment.Location,
		equipment.Status, equipment.LastMaintenanceDate, equipment.Notes,
		equipment.CreatedAt, equipment.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrEquipmentExists
	}
	return err
}

// Get retrieves an equipment record by id, or nil when absent.
func (r *EquipmentRepository) Get(ctx context.Context, id string) (*domain.Equipment, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipment WHERE equipment_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByIdentifier retrieves a record by its unique identifier, or nil
// when absent.
func (r *EquipmentRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Equipment, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipment WHERE identifier=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, identifier))
}

// List returns the full inventory sorted by identifier.
func (r *EquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY identifier`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update replaces an inventory row.
func (r *EquipmentRepository) Update(ctx context.Context, equipment domain.Equipment) error {
	const stmt = `UPDATE equipment SET name=$2, location=$3, status=$4,
        last_maintenance_date=$5, notes=$6, updated_at=$7
        WHERE equipment_id=$1`

	tag, err := r.pool.Exec(ctx, stmt,
		equipment.ID, equipment.Name, equipment.Location, equipment.Status,
		equipment.LastMaintenanceDate, equipment.Notes, equipment.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) scanOne(row pgx.Row) (*domain.Equipment, error) {
	item, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func scanEquipment(row pgx.Row) (domain.Equipment, error) {
	var item domain.Equipment
	err := row.Scan(&item.ID, &item.Name, &item.Identifier, &item.Location,
		&item.Status, &item.LastMaintenanceDate, &item.Notes,
		&item.CreatedAt, &item.UpdatedAt)
	return item, err
}
