package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context, query string, limit, offset int) ([]*models.Customer, error)
}

type customerRepo struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, contact_person, phone, email, address, accounts_receivable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, customer.Name, customer.ContactPerson, customer.Phone, customer.Email, customer.Address, customer.AccountsReceivable).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	return mapError(err, "customer", customer.Name)
}

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, name, contact_person, phone, email, address, accounts_receivable, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.ContactPerson, &customer.Phone, &customer.Email, &customer.Address, &customer.AccountsReceivable, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "customer", id)
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5, accounts_receivable = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, customer.Name, customer.ContactPerson, customer.Phone, customer.Email, customer.Address, customer.AccountsReceivable, customer.ID)
	if err != nil {
		return mapError(err, "customer", customer.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "customer", customer.ID)
	}
	return nil
}

func (r *customerRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT id, name, contact_person, phone, email, address, accounts_receivable, created_at, updated_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.ContactPerson, &customer.Phone, &customer.Email, &customer.Address, &customer.AccountsReceivable, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}
