package postgresql

import (
	"context"
	"fmt"

	"github.com/presensi-hr/hris-backend-go/internal/domain/employee"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// ListActive implements employee.EmployeeRepository. The listing feeds the
// lookup index rebuild; it is read in one shot so the index is always built
// from a consistent snapshot.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name,
			   COALESCE(contact_number, ''), COALESCE(email, ''),
			   COALESCE(department, ''), COALESCE(branch, ''),
			   created_at, updated_at
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName,
			&emp.ContactNumber, &emp.Email,
			&emp.Department, &emp.Branch,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}
