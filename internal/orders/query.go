// Package orders holds the flower order query builder and repository.
//
// Every read and write is scoped to the authenticated owner. A lookup of an
// order that exists but belongs to someone else looks exactly like a lookup of
// an order that does not exist.
package orders

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/database"
	"github.com/01moynul/flowershop-golang/internal/models"
)

const orderColumns = "id, owner_id, status, flower_details, quantity, address, created_at, updated_at"

// BuildInsertOrder builds the INSERT for a validated create payload.
func BuildInsertOrder(identity models.AuthenticatedIdentity, order models.NewOrder) (database.Statement, error) {
	details, err := json.Marshal(order.FlowerDetails)
	if err != nil {
		return database.Statement{}, fmt.Errorf("encode flower_details: %w", err)
	}

	return database.Statement{
		Query: "INSERT INTO orders (owner_id, status, flower_details, quantity, address) VALUES (?, ?, ?, ?, ?)",
		Args: []any{
			identity.ID,
			string(order.Status),
			string(details),
			order.Quantity,
			order.Address,
		},
	}, nil
}

// BuildUpdateOrder builds an UPDATE touching only the fields set in update,
// always in the order status, flower_details, quantity, address.
func BuildUpdateOrder(orderID int64, update models.OrderUpdate) (database.Statement, error) {
	if update.IsEmpty() {
		return database.Statement{}, common.ErrorEmptyUpdate
	}

	var (
		fields []string
		args   []any
	)

	if update.Status != nil {
		fields = append(fields, "status = ?")
		args = append(args, string(*update.Status))
	}

	if update.FlowerDetails != nil {
		details, err := json.Marshal(update.FlowerDetails)
		if err != nil {
			return database.Statement{}, fmt.Errorf("encode flower_details: %w", err)
		}
		fields = append(fields, "flower_details = ?")
		args = append(args, string(details))
	}

	if update.Quantity != nil {
		fields = append(fields, "quantity = ?")
		args = append(args, *update.Quantity)
	}

	if update.Address != nil {
		fields = append(fields, "address = ?")
		args = append(args, *update.Address)
	}

	return database.Statement{
		Query: "UPDATE orders SET " + strings.Join(fields, ", ") + " WHERE id = ?",
		Args:  append(args, orderID),
	}, nil
}

// BuildSelectOrder fetches one order by id and owner in a single query.
func BuildSelectOrder(identity models.AuthenticatedIdentity, orderID int64) database.Statement {
	return database.Statement{
		Query: "SELECT " + orderColumns + " FROM orders WHERE id = ? AND owner_id = ?",
		Args:  []any{orderID, identity.ID},
	}
}

// BuildListOrders lists the owner's orders, newest first, optionally
// narrowed to one status.
func BuildListOrders(identity models.AuthenticatedIdentity, status string) database.Statement {
	if status != "" {
		return database.Statement{
			Query: "SELECT " + orderColumns + " FROM orders WHERE owner_id = ? AND status = ? ORDER BY created_at DESC",
			Args:  []any{identity.ID, status},
		}
	}
	return database.Statement{
		Query: "SELECT " + orderColumns + " FROM orders WHERE owner_id = ? ORDER BY created_at DESC",
		Args:  []any{identity.ID},
	}
}
