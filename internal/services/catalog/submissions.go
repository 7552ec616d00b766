// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/validator"
)

// QuoteSteps is the number of steps on the quote form.
const QuoteSteps = 3

// quoteStepFields lists the form fields each quote step owns.
var quoteStepFields = [QuoteSteps][]string{
	{"product_name", "area_sqm"},
	{"delivery_city", "delivery_district", "service_type"},
	{"customer_name", "customer_phone", "customer_email", "company_name", "notes"},
}

func normalizeQuote(q *models.QuoteRequest) {
	q.ProductName = strings.TrimSpace(q.ProductName)
	q.DeliveryCity = strings.TrimSpace(q.DeliveryCity)
	q.DeliveryDistrict = strings.TrimSpace(q.DeliveryDistrict)
	q.CustomerName = strings.TrimSpace(q.CustomerName)
	q.CustomerPhone = strings.TrimSpace(q.CustomerPhone)
	q.CustomerEmail = strings.ToLower(strings.TrimSpace(q.CustomerEmail))
	q.CompanyName = strings.TrimSpace(q.CompanyName)
	q.Notes = strings.TrimSpace(q.Notes)
}

// ValidateQuoteStep returns the field errors for one step (1-based) of the
// quote form. Errors in later steps are ignored.
func ValidateQuoteStep(step int, q *models.QuoteRequest) map[string]string {
	if step < 1 || step > QuoteSteps {
		return map[string]string{"step": fmt.Sprintf("must be between 1 and %d", QuoteSteps)}
	}
	normalizeQuote(q)
	all := validator.GetValidationErrors(validator.Validate(q))
	if len(all) == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, f := range quoteStepFields[step-1] {
		if msg, ok := all[f]; ok {
			out[f] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SubmitQuote validates and stores a quote request with status new.
func (s *Service) SubmitQuote(ctx context.Context, q *models.QuoteRequest) error {
	normalizeQuote(q)
	if err := validator.Validate(q); err != nil {
		return apperrors.ValidationFailed(validator.GetValidationErrors(err))
	}
	if err := s.stores.Quotes.Create(ctx, q); err != nil {
		return fmt.Errorf("submit quote: %w", err)
	}
	s.logger.Info("quote request received",
		"id", q.ID,
		"product", q.ProductName,
		"area_sqm", q.AreaSqm,
		"city", q.DeliveryCity,
	)
	return nil
}

// SubmitContact validates and stores a contact form submission.
func (s *Service) SubmitContact(ctx context.Context, c *models.ContactSubmission) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)

	if err := validator.Validate(c); err != nil {
		return apperrors.ValidationFailed(validator.GetValidationErrors(err))
	}
	if err := s.stores.Contacts.Create(ctx, c); err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	s.logger.Info("contact submission received", "id", c.ID, "subject", c.Subject)
	return nil
}
