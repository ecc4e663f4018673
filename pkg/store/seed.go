package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seed populates the database with a small demo dataset: vendors, a catalog,
// stock levels, customers, and a month of orders. It is meant for local
// evaluation of the export pipeline, not for production use, and assumes an
// empty database.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	vendors := []struct{ name, contact, email string }{
		{"Acme Supply Co", "Dana Reyes", "dana@acmesupply.example"},
		{"Northwind Traders", "Sam Okafor", "sam@northwind.example"},
		{"Blue Harbor Goods", "Lee Tanaka", "lee@blueharbor.example"},
	}
	vendorIDs := make([]string, 0, len(vendors))
	for _, v := range vendors {
		id := uuid.NewString()
		vendorIDs = append(vendorIDs, id)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vendors (id, business_name, contact_name, email, phone, active, created_at)
			 VALUES (?, ?, ?, ?, ?, 1, ?)`,
			id, v.name, v.contact, v.email, "+1-555-0100", now.AddDate(-1, 0, 0)); err != nil {
			return fmt.Errorf("failed to seed vendor: %w", err)
		}
	}

	categories := []string{"Apparel", "Electronics", "Home", "Outdoors"}
	categoryIDs := make([]string, 0, len(categories))
	for _, name := range categories {
		id := uuid.NewString()
		categoryIDs = append(categoryIDs, id)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name) VALUES (?, ?)`, id, name); err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}

	products := []struct {
		name  string
		sku   string
		price float64
	}{
		{"Canvas Tote", "APP-001", 24.50},
		{"Wool Beanie", "APP-002", 18.00},
		{"Wireless Earbuds", "ELC-001", 89.99},
		{"Smart Plug", "ELC-002", 21.95},
		{"Ceramic Mug Set", "HOM-001", 32.00},
		{"Linen Throw", "HOM-002", 54.25},
		{"Trail Bottle", "OUT-001", 16.75},
		{"Camp Lantern", "OUT-002", 42.10},
	}
	productIDs := make([]string, 0, len(products))
	for i, p := range products {
		id := uuid.NewString()
		productIDs = append(productIDs, id)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, sku, price, active, category_id, vendor_id, created_at)
			 VALUES (?, ?, ?, ?, 1, ?, ?, ?)`,
			id, p.name, p.sku, p.price,
			categoryIDs[i/2], vendorIDs[i%len(vendorIDs)], now.AddDate(0, -6, 0)); err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}

	warehouses := []string{"east", "west"}
	for i, productID := range productIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (id, product_id, warehouse, quantity, reorder_level, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), productID, warehouses[i%2], 5+i*11, 20, now.AddDate(0, 0, -i)); err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
	}

	customers := []struct{ first, last, email, city, country string }{
		{"Ava", "Bennett", "ava.bennett@example.com", "Portland", "US"},
		{"Noah", "Castillo", "noah.castillo@example.com", "Austin", "US"},
		{"Mia", "Dubois", "mia.dubois@example.com", "Lyon", "FR"},
		{"Liam", "Eriksen", "liam.eriksen@example.com", "Oslo", "NO"},
		{"Zoe", "Fournier", "zoe.fournier@example.com", "Montreal", "CA"},
	}
	customerIDs := make([]string, 0, len(customers))
	for i, c := range customers {
		id := uuid.NewString()
		customerIDs = append(customerIDs, id)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers (id, first_name, last_name, email, phone, city, country, active, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
			id, c.first, c.last, c.email, "+1-555-0200", c.city, c.country,
			now.AddDate(0, -3, -i)); err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
	}

	statuses := []string{"pending", "paid", "shipped", "delivered"}
	payments := []string{"card", "paypal", "invoice"}
	for i := 0; i < 24; i++ {
		orderID := uuid.NewString()
		createdAt := now.AddDate(0, 0, -(i % 30)).Add(-time.Duration(i) * time.Hour)
		productID := productIDs[i%len(productIDs)]
		quantity := 1 + i%4
		unitPrice := products[i%len(products)].price
		total := unitPrice * float64(quantity)

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, customer_id, status, payment_method, total_amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, customerIDs[i%len(customerIDs)], statuses[i%len(statuses)],
			payments[i%len(payments)], total, createdAt); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), orderID, productID, quantity, unitPrice); err != nil {
			return fmt.Errorf("failed to seed order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	s.logger.Info("demo dataset seeded",
		"vendors", len(vendors),
		"products", len(products),
		"customers", len(customers),
		"orders", 24,
	)

	return nil
}
