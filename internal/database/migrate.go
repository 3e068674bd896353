package database

import (
	"context"
	"fmt"
	"time"
)

// migrations is the ordered, idempotent DDL for the whole schema.
// Uniqueness invariants (user email, department name, order number, one
// payroll per employee-month, one attendance row per employee-day, one
// employee per user) are enforced here with unique indexes; handler-level
// pre-checks only exist to produce friendlier error messages.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'Employee',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS departments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		head_of_department UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL UNIQUE,
		department_id UUID,
		designation TEXT,
		salary DOUBLE PRECISION,
		date_of_joining DATE,
		date_of_birth DATE,
		phone TEXT,
		address TEXT,
		pan_number TEXT,
		aadhar_number TEXT,
		bank_account TEXT,
		bank_name TEXT,
		ifsc_code TEXT,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_id UUID NOT NULL,
		work_date DATE NOT NULL,
		check_in_time TIMESTAMPTZ,
		check_out_time TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'Absent',
		remarks TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, work_date)
	)`,

	`CREATE TABLE IF NOT EXISTS payrolls (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_id UUID NOT NULL,
		month INT NOT NULL,
		year INT NOT NULL,
		basic_salary DOUBLE PRECISION NOT NULL,
		allowances DOUBLE PRECISION NOT NULL DEFAULT 0,
		deductions DOUBLE PRECISION NOT NULL DEFAULT 0,
		net_salary DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		payment_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, month, year)
	)`,

	`CREATE TABLE IF NOT EXISTS client_orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_number TEXT NOT NULL UNIQUE,
		client_id UUID NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		advance_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Order Received',
		priority TEXT NOT NULL DEFAULT 'Medium',
		order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deadline TIMESTAMPTZ,
		delivery_date TIMESTAMPTZ,
		delivery_address TEXT,
		remarks TEXT,
		invoice_number TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS production_tasks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		task_name TEXT NOT NULL,
		description TEXT,
		order_id UUID,
		department_id UUID,
		assigned_to UUID[] NOT NULL DEFAULT '{}',
		stage TEXT NOT NULL DEFAULT 'Raw Material',
		status TEXT NOT NULL DEFAULT 'Pending',
		priority TEXT NOT NULL DEFAULT 'Medium',
		start_date DATE,
		expected_completion_date DATE,
		actual_completion_date TIMESTAMPTZ,
		progress INT NOT NULL DEFAULT 0,
		quality TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		client_id UUID,
		status TEXT NOT NULL DEFAULT 'Planned',
		assigned_employees UUID[] NOT NULL DEFAULT '{}',
		department_id UUID,
		start_date DATE,
		deadline DATE,
		completion_date TIMESTAMPTZ,
		budget DOUBLE PRECISION,
		progress INT NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'Medium',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS awards (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		award_date DATE NOT NULL,
		issuing_organization TEXT,
		certificate TEXT,
		image_url TEXT,
		category TEXT NOT NULL DEFAULT 'Award',
		display_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS enquiries (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		phone TEXT,
		status TEXT NOT NULL DEFAULT 'New',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (work_date)`,
	`CREATE INDEX IF NOT EXISTS idx_payrolls_employee ON payrolls (employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client ON client_orders (client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON client_orders (order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees (department_id)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, db Service) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool := db.GetPool()
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
