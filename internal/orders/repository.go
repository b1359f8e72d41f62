package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/database"
	"github.com/01moynul/flowershop-golang/internal/models"
)

// ConnSource hands out the managed store connection.
type ConnSource interface {
	Acquire(ctx context.Context) (*database.Conn, error)
}

// Repository runs order statements against the managed connection.
//
// Store errors come back wrapped in common.ErrorPersistence. Nothing here is
// retried; reconnecting is the connection manager's job.
type Repository struct {
	db ConnSource
}

func NewRepository(db ConnSource) *Repository {
	return &Repository{db: db}
}

// Create inserts the order and returns it as stored.
func (r *Repository) Create(ctx context.Context, identity models.AuthenticatedIdentity, order models.NewOrder) (*models.Order, error) {
	st, err := BuildInsertOrder(identity, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, persistence(err)
	}

	res, err := conn.Exec(ctx, st)
	if err != nil {
		return nil, persistence(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistence(err)
	}

	created, err := fetch(ctx, conn, identity, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, persistence(fmt.Errorf("order %d missing after insert", id))
	}
	return created, nil
}

// Update applies a partial update to an order the identity owns.
//
// The order is looked up by id and owner first; common.ErrorNotFound is
// returned both when it does not exist and when it belongs to someone else.
func (r *Repository) Update(ctx context.Context, identity models.AuthenticatedIdentity, orderID int64, update models.OrderUpdate) (*models.Order, error) {
	if update.IsEmpty() {
		return nil, common.ErrorEmptyUpdate
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, persistence(err)
	}

	existing, err := fetch(ctx, conn, identity, orderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.ErrorNotFound
	}

	st, err := BuildUpdateOrder(orderID, update)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, st); err != nil {
		return nil, persistence(err)
	}

	updated, err := fetch(ctx, conn, identity, orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, common.ErrorNotFound
	}
	return updated, nil
}

// Get lists the identity's orders, newest first. An empty status means all.
func (r *Repository) Get(ctx context.Context, identity models.AuthenticatedIdentity, status string) ([]models.Order, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, persistence(err)
	}

	orders := []models.Order{}
	err = conn.Query(ctx, BuildListOrders(identity, status), func(rows *sql.Rows) error {
		o, err := scanOrder(rows)
		if err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}
	return orders, nil
}

// FetchByID returns the identity's order, or nil if there is no such order
// for this owner.
func (r *Repository) FetchByID(ctx context.Context, identity models.AuthenticatedIdentity, orderID int64) (*models.Order, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return fetch(ctx, conn, identity, orderID)
}

func fetch(ctx context.Context, conn *database.Conn, identity models.AuthenticatedIdentity, orderID int64) (*models.Order, error) {
	var found *models.Order
	err := conn.Query(ctx, BuildSelectOrder(identity, orderID), func(rows *sql.Rows) error {
		o, err := scanOrder(rows)
		if err != nil {
			return err
		}
		found = &o
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}
	return found, nil
}

func scanOrder(rows *sql.Rows) (models.Order, error) {
	var (
		o       models.Order
		status  string
		details []byte
	)
	if err := rows.Scan(&o.ID, &o.OwnerID, &status, &details, &o.Quantity, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return o, err
	}
	o.Status = models.OrderStatus(status)

	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.FlowerDetails); err != nil {
			return o, fmt.Errorf("decode flower_details of order %d: %w", o.ID, err)
		}
	}
	if o.FlowerDetails == nil {
		o.FlowerDetails = map[string]any{}
	}
	return o, nil
}

func persistence(err error) error {
	if errors.Is(err, common.ErrorPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorPersistence, err)
}
