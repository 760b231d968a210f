package domain

import (
	"strings"
	"time"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

func ParseCustomerStatus(raw string) (CustomerStatus, error) {
	switch status := CustomerStatus(strings.ToUpper(strings.TrimSpace(raw))); status {
	case CustomerStatusActive, CustomerStatusInactive:
		return status, nil
	}
	return "", UnknownStatus(raw)
}

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
	CustomerTypeLegal      CustomerType = "LEGAL"
)

type Customer struct {
	ID           int64
	NationalCode string
	PhoneNumber  string
	FullName     string
	Status       CustomerStatus
	Type         CustomerType
	BirthDate    time.Time
	CreatedAt    time.Time
}
