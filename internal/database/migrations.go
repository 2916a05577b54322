package database

import (
	"context"
	"database/sql"
	"fmt"
)

// statements is the idempotent schema for the reservation engine and the
// surrounding CRUD surfaces.  The composite (space, table, date) indexes back
// the overlap scans; reservation_id carries a UNIQUE index as a fail-closed
// backstop for identifier generation.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id VARCHAR(20) NOT NULL,
		space_type VARCHAR(20) NOT NULL,
		table_id VARCHAR(10) NOT NULL,
		table_capacity INT NOT NULL,
		reservation_date DATE NOT NULL,
		reservation_time TIME NOT NULL,
		duration_hours INT NOT NULL DEFAULT 2,
		customer_name VARCHAR(120) NOT NULL,
		customer_phone VARCHAR(40) NOT NULL,
		customer_email VARCHAR(190) NOT NULL,
		deposit_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(20) NULL,
		status ENUM('pending','confirmed','seated','completed','cancelled','no_show') NOT NULL,
		booking_source VARCHAR(20) NOT NULL DEFAULT 'online',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reservation_id (reservation_id),
		KEY idx_table_date (space_type, table_id, reservation_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS table_availability (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		space_type VARCHAR(20) NOT NULL,
		table_id VARCHAR(10) NOT NULL,
		block_date DATE NOT NULL,
		block_start_time TIME NOT NULL,
		block_end_time TIME NOT NULL,
		reason TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_table_date (space_type, table_id, block_date),
		KEY idx_block_date (block_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS daily_sequences (
		scope VARCHAR(10) NOT NULL,
		seq_date DATE NOT NULL,
		seq INT UNSIGNED NOT NULL DEFAULT 0,
		PRIMARY KEY (scope, seq_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_id VARCHAR(20) NOT NULL,
		order_type VARCHAR(10) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		table_number INT NULL,
		customer_name VARCHAR(120) NULL,
		customer_phone VARCHAR(40) NULL,
		delivery_address TEXT NULL,
		delivery_notes TEXT NULL,
		items JSON NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0,
		tax DECIMAL(10,2) NOT NULL DEFAULT 0,
		delivery_fee DECIMAL(10,2) NOT NULL DEFAULT 0,
		total DECIMAL(10,2) NOT NULL DEFAULT 0,
		payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(20) NULL,
		requested_waiter TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_order_id (order_id),
		KEY idx_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(190) NOT NULL,
		category VARCHAR(60) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		description TEXT NULL,
		image_url VARCHAR(500) NULL,
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_category (category)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS special_offers (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(190) NOT NULL,
		description TEXT NULL,
		original_price DECIMAL(10,2) NOT NULL,
		offer_price DECIMAL(10,2) NOT NULL,
		discount_percent INT NOT NULL DEFAULT 0,
		badge VARCHAR(60) NULL,
		image_url VARCHAR(500) NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS staff_users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(190) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'STAFF',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.  Every statement is CREATE IF NOT EXISTS, so
// running it on every startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
