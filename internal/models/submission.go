// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuoteStatus is the handling state of a quote request.
type QuoteStatus string

const (
	QuoteNew       QuoteStatus = "new"
	QuoteContacted QuoteStatus = "contacted"
	QuoteQuoted    QuoteStatus = "quoted"
	QuoteClosed    QuoteStatus = "closed"
)

// QuoteStatuses lists statuses in workflow order.
var QuoteStatuses = []QuoteStatus{QuoteNew, QuoteContacted, QuoteQuoted, QuoteClosed}

// IsValid reports whether s is a known status.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteNew, QuoteContacted, QuoteQuoted, QuoteClosed:
		return true
	}
	return false
}

// Service types offered on the quote form.
const (
	ServiceSupplyOnly   = "supply_only"
	ServiceInstallation = "installation"
	ServiceFull         = "supply_and_installation"
)

// QuoteRequest is a price request submitted from the get-quote form.
type QuoteRequest struct {
	ID               uuid.UUID   `json:"id"`
	ProductID        *uuid.UUID  `json:"product_id,omitempty"`
	ProductName      string      `json:"product_name" validate:"required,max=200"`
	AreaSqm          float64     `json:"area_sqm" validate:"gt=0,lte=100000"`
	DeliveryCity     string      `json:"delivery_city" validate:"required,max=100"`
	DeliveryDistrict string      `json:"delivery_district" validate:"max=100"`
	ServiceType      string      `json:"service_type" validate:"required,oneof=supply_only installation supply_and_installation"`
	CustomerName     string      `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone    string      `json:"customer_phone" validate:"required,phone"`
	CustomerEmail    string      `json:"customer_email" validate:"required,email"`
	CompanyName      string      `json:"company_name" validate:"max=160"`
	Notes            string      `json:"notes" validate:"max=2000"`
	Status           QuoteStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

// QuoteFilter narrows the admin quote list.
type QuoteFilter struct {
	Search string
	Status QuoteStatus // empty means all
}

// Matches reports whether q passes the filter. Search is a case-insensitive
// substring match over customer name, email, company and product name.
func (f QuoteFilter) Matches(q *QuoteRequest) bool {
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{q.CustomerName, q.CustomerEmail, q.CompanyName, q.ProductName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// ContactSubmission is a message from the contact form.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=120"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty,phone"`
	Subject   string    `json:"subject" validate:"max=200"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}
