// Package visitor provides the visitor check-in domain model and data access.
package visitor

import (
	"strings"
	"time"
)

// Visitor represents one recorded check-in.
type Visitor struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	ApartmentNumber string    `json:"apartment_number"`
	Purpose         string    `json:"purpose"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	CheckInTime     time.Time `json:"check_in_time"`
	Notified        bool      `json:"notified"`
}

// CreateVisitorRequest holds the caller-supplied fields for a new check-in.
// ID, check-in time, and the notified flag are assigned by the store.
type CreateVisitorRequest struct {
	Name            string `json:"name"`
	ApartmentNumber string `json:"apartment_number"`
	Purpose         string `json:"purpose"`
	PhoneNumber     string `json:"phone_number,omitempty"`
}

// Validate checks required fields and reports every missing one.
func (r CreateVisitorRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.ApartmentNumber) == "" {
		missing = append(missing, "apartment_number")
	}
	if strings.TrimSpace(r.Purpose) == "" {
		missing = append(missing, "purpose")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// UpdateVisitorRequest holds the mutable fields of an existing record.
// Check-in time and the notified flag never change after creation.
type UpdateVisitorRequest struct {
	Name            string `json:"name"`
	ApartmentNumber string `json:"apartment_number"`
	Purpose         string `json:"purpose"`
	PhoneNumber     string `json:"phone_number,omitempty"`
}

// Validate checks required fields and reports every missing one.
func (r UpdateVisitorRequest) Validate() error {
	return CreateVisitorRequest{
		Name:            r.Name,
		ApartmentNumber: r.ApartmentNumber,
		Purpose:         r.Purpose,
	}.Validate()
}

// ListOptions controls pagination for List. Zero values mean "all rows".
type ListOptions struct {
	Limit  int
	Offset int
}
