package attendance

import (
	"github.com/presensi-hr/hris-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type QueryRequest struct {
	Date   string `json:"date"`
	Policy string `json:"policy"`
}

func (r *QueryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, err := ParsePolicy(r.Policy); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "policy",
			Message: "policy must be one of: first, all",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	DeviceUserID     string  `json:"device_user_id"`
	EmployeeNumber   string  `json:"employee_number,omitempty"`
	TimeIn           string  `json:"time_in"`
	Status           string  `json:"status"`
	EmployeeID       *string `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	ResolutionMethod string  `json:"resolution_method"`
}

type ListEntriesResponse struct {
	Date    string          `json:"date"`
	Policy  string          `json:"policy"`
	Total   int             `json:"total"`
	Entries []EntryResponse `json:"entries"`
}
