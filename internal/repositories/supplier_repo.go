package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id int64) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	List(ctx context.Context, query string, limit, offset int) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepository(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_person, phone, email, address, accounts_payable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, supplier.Name, supplier.ContactPerson, supplier.Phone, supplier.Email, supplier.Address, supplier.AccountsPayable).
		Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
	return mapError(err, "supplier", supplier.Name)
}

func (r *supplierRepo) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, name, contact_person, phone, email, address, accounts_payable, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Phone, &supplier.Email, &supplier.Address, &supplier.AccountsPayable, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "supplier", id)
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5, accounts_payable = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactPerson, supplier.Phone, supplier.Email, supplier.Address, supplier.AccountsPayable, supplier.ID)
	if err != nil {
		return mapError(err, "supplier", supplier.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "supplier", supplier.ID)
	}
	return nil
}

func (r *supplierRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Supplier, error) {
	query := `
		SELECT id, name, contact_person, phone, email, address, accounts_payable, created_at, updated_at
		FROM suppliers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []*models.Supplier{}
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Phone, &supplier.Email, &supplier.Address, &supplier.AccountsPayable, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}
