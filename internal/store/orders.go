package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shalliecode/volydog/internal/models"
)

const orderColumns = `id, order_number, user_id, customer_name, customer_email, customer_phone, customer_address, payment_method, payment_status, status, total_amount, notes, created_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var userID sql.NullInt64
	err := row.Scan(&o.ID, &o.OrderNumber, &userID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CustomerAddress, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		o.UserID = &userID.Int64
	}
	return &o, nil
}

// IsOrderNumberConflict reports whether err is the unique-constraint failure
// on orders.order_number. Checkout retries with a fresh suffix in that case.
func IsOrderNumberConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "orders.order_number")
}

// CreateOrder persists the order and its items in a single transaction.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	var userID any
	if order.UserID != nil {
		userID = *order.UserID
	}

	res, err := tx.Exec(`
		INSERT INTO orders (order_number, user_id, customer_name, customer_email, customer_phone, customer_address, payment_method, payment_status, status, total_amount, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, order.OrderNumber, userID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.CustomerAddress, order.PaymentMethod, order.PaymentStatus, order.Status, order.TotalAmount, order.Notes)
	if err != nil {
		tx.Rollback()
		return err
	}
	order.ID, _ = res.LastInsertId()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		res, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
		`, item.OrderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		item.ID, _ = res.LastInsertId()
	}

	return tx.Commit()
}

func (s *Store) GetOrderByID(id int64) (*models.Order, error) {
	o, err := scanOrder(s.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (s *Store) queryOrders(query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// GetAllOrders returns every order, newest first.
func (s *Store) GetAllOrders() ([]models.Order, error) {
	return s.queryOrders(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`)
}

func (s *Store) GetRecentOrders(limit int) ([]models.Order, error) {
	return s.queryOrders(`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

func (s *Store) UpdateOrderStatus(id int64, status string) error {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateOrderPaymentStatus(id int64, paymentStatus string) error {
	res, err := s.DB.Exec(`UPDATE orders SET payment_status = ? WHERE id = ?`, paymentStatus, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountOrders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (s *Store) CountOrdersByStatus(status string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = ?`, status).Scan(&count)
	return count, err
}
