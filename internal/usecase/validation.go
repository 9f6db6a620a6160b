package usecase

import (
	"fmt"
	"math"
	"strings"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// RegisterInput is the registration form as submitted.
type RegisterInput = model.Registration

// normalizeRegistration trims identity fields and derives the full name when it was left blank.
// Passwords are taken verbatim.
func normalizeRegistration(in RegisterInput) RegisterInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	if in.FullName == "" {
		in.FullName = strings.TrimSpace(in.FirstName + " " + in.LastName)
	}
	return in
}

// ValidateRegistration rejects a form before anything touches the store.
func ValidateRegistration(in RegisterInput) error {
	switch {
	case in.Email == "":
		return fmt.Errorf("%w: email is required", domainErrors.ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", domainErrors.ErrValidation)
	case in.Password != in.ConfirmPassword:
		return fmt.Errorf("%w: passwords do not match", domainErrors.ErrValidation)
	}
	return nil
}

// ValidateRequirements rejects negative or non-finite recommendation inputs.
func ValidateRequirements(req model.Requirements) error {
	if !finiteNonNegative(req.Budget) {
		return fmt.Errorf("%w: budget must be a non-negative number", domainErrors.ErrValidation)
	}
	if !finiteNonNegative(req.DataNeededGB) {
		return fmt.Errorf("%w: data needed must be a non-negative number", domainErrors.ErrValidation)
	}
	if req.ValidityNeeded < 0 {
		return fmt.Errorf("%w: validity must not be negative", domainErrors.ErrValidation)
	}
	return nil
}

// ValidatePlan checks a plan arriving from outside the built-in catalog.
func ValidatePlan(p model.Plan) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: plan name is required", domainErrors.ErrValidation)
	case !finiteNonNegative(p.Price):
		return fmt.Errorf("%w: plan %q has invalid price", domainErrors.ErrValidation, p.Name)
	case p.ValidityDays <= 0:
		return fmt.Errorf("%w: plan %q has invalid validity", domainErrors.ErrValidation, p.Name)
	case !finiteNonNegative(p.DataLimitGB):
		return fmt.Errorf("%w: plan %q has invalid data limit", domainErrors.ErrValidation, p.Name)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
