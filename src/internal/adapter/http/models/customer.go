package models

import (
	"strings"
	"time"

	"github.com/api-sage/core-banking/src/internal/domain"
)

// NationalCode format and uniqueness are business rules checked by the
// customer service, not here.
type CreateCustomerRequest struct {
	FullName     string `json:"fullName" validate:"required,max=255"`
	NationalCode string `json:"nationalCode"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=20"`
	Type         string `json:"type" validate:"required,oneof=INDIVIDUAL LEGAL"`
	BirthDate    string `json:"birthDate" validate:"required,datetime=2006-01-02"`
}

func (r CreateCustomerRequest) Normalize() CreateCustomerRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.NationalCode = strings.TrimSpace(r.NationalCode)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	return r
}

func (r CreateCustomerRequest) Validate() error {
	return validateStruct(r.Normalize())
}

type CustomerResponse struct {
	ID           int64  `json:"id"`
	NationalCode string `json:"nationalCode"`
	PhoneNumber  string `json:"phoneNumber"`
	FullName     string `json:"fullName"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	BirthDate    string `json:"birthDate"`
	CreatedAt    string `json:"createdAt"`
}

func NewCustomerResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID,
		NationalCode: customer.NationalCode,
		PhoneNumber:  customer.PhoneNumber,
		FullName:     customer.FullName,
		Status:       string(customer.Status),
		Type:         string(customer.Type),
		BirthDate:    customer.BirthDate.Format(dateLayout),
		CreatedAt:    customer.CreatedAt.Format(time.RFC3339),
	}
}

func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, NewCustomerResponse(customer))
	}
	return out
}

func ParseBirthDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}
