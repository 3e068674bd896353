package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"textile-backend/internal/ctxkeys"
)

// scopeClient narrows a query to the caller's own records when the caller
// holds the Client role. Admins and employees see everything; clients only
// ever see rows where col matches their own user ID, regardless of any
// client filter they pass.
func scopeClient(ctx context.Context, b *whereBuilder, col string) {
	if ctxkeys.CallerRole(ctx) == ctxkeys.RoleClient {
		b.Eq(col, ctxkeys.CallerID(ctx))
	}
}

// employeeIDForUser resolves the employee profile ID linked to a user
// account. Returns pgx.ErrNoRows when the user has no employee profile.
func employeeIDForUser(ctx context.Context, pool *pgxpool.Pool, userID string) (string, error) {
	var id string
	err := pool.QueryRow(ctx,
		"SELECT id FROM employees WHERE user_id = $1", userID).Scan(&id)
	return id, err
}

// departmentEmployeeIDs lists the employee IDs belonging to a department.
// Attendance rows carry no department column, so department filters
// resolve to an employee-ID set first.
func departmentEmployeeIDs(ctx context.Context, pool *pgxpool.Pool, departmentID string) ([]string, error) {
	rows, err := pool.Query(ctx,
		"SELECT id FROM employees WHERE department_id = $1", departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
