// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package validator

import (
	"testing"
)

func TestNew_Singleton(t *testing.T) {
	v1 := New()
	v2 := New()
	if v1.v == nil {
		t.Fatal("New() returned Validator with nil inner validator")
	}
	if v1.v != v2.v {
		t.Error("New() should return Validators sharing the same underlying instance")
	}
}

type contactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Message string `json:"message" validate:"required"`
}

func TestValidate_ValidStruct(t *testing.T) {
	f := contactForm{Name: "Ayşe", Email: "ayse@example.com", Phone: "+90 532 000 00 00", Message: "Merhaba"}
	if err := Validate(f); err != nil {
		t.Errorf("Validate() should pass for valid struct, got: %v", err)
	}
}

func TestValidationErrors_KeyedByJSONName(t *testing.T) {
	v := New()
	err := v.Validate(contactForm{Email: "nope", Phone: "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := v.ValidationErrors(err)
	want := map[string]string{
		"name":    "is required",
		"email":   "must be a valid email address",
		"phone":   "must be a valid phone number",
		"message": "is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errs[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidationErrors_Nil(t *testing.T) {
	if errs := New().ValidationErrors(nil); errs != nil {
		t.Errorf("ValidationErrors(nil) = %v, want nil", errs)
	}
}

func TestValidationErrors_NonValidationError(t *testing.T) {
	errs := GetValidationErrors(errSample)
	if _, ok := errs["_error"]; !ok {
		t.Error("should have _error key for non-validation errors")
	}
}

func TestCustomValidation_Slug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"mese-parke", true},
		{"ac4-8mm", true},
		{"parke", true},
		{"Mese-Parke", false},
		{"mese--parke", false},
		{"-mese", false},
		{"meşe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := ValidateVar(tt.slug, "slug")
			if tt.valid && err != nil {
				t.Errorf("slug %q should be valid: %v", tt.slug, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("slug %q should be invalid", tt.slug)
			}
		})
	}
}

var errSample = &sampleError{}

type sampleError struct{}

func (e *sampleError) Error() string { return "sample error" }
