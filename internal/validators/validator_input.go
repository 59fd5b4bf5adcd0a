package validators

import (
	"context"
	"fmt"
	"strings"

	"recipebox/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldEmail targets the email address of a registration request.
	FieldEmail = "email"

	// FieldPassword targets the plaintext password of a registration or
	// profile-update request.
	FieldPassword = "password"

	// FieldName targets the display name of a tag or ingredient.
	FieldName = "name"

	// FieldTitle targets the title of a recipe.
	FieldTitle = "title"

	// FieldTimeMinutes targets the preparation time of a recipe.
	FieldTimeMinutes = "time_minutes"

	// FieldPrice targets the estimated cost of a recipe.
	FieldPrice = "price"
)

// MinPasswordLength is the minimum accepted password length for both
// registration and profile updates.
const MinPasswordLength = 5

// InputValidator implements the Validator interface for the API's inbound
// domain models: RegisterRequest, UpdateProfileRequest,
// CreateCatalogItemRequest, and Recipe.
//
// Recipes are validated in their merged form, after a partial or full update
// has been applied on top of the stored record, so the checks always see the
// final state that would be persisted.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type InputValidator struct {
}

// NewInputValidator constructs a new InputValidator
// and returns it as the Validator interface.
func NewInputValidator() Validator {
	return &InputValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model and
// ErrUnknownField if an explicitly requested field name is not recognised
// for the matched model. Field-level failures are reported as
// *ValidationError values.
func (v *InputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)
	case models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(ctx, value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(ctx, *value, fields...)
	case models.CreateCatalogItemRequest:
		return v.validateCreateCatalogItemRequest(ctx, value, fields...)
	case *models.CreateCatalogItemRequest:
		return v.validateCreateCatalogItemRequest(ctx, *value, fields...)
	case models.Recipe:
		return v.validateRecipe(ctx, value, fields...)
	case *models.Recipe:
		return v.validateRecipe(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *InputValidator) validateRegisterRequest(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if request.Email == "" {
				return NewValidationError(FieldEmail, "must not be empty")
			}
		case FieldPassword:
			if len(request.Password) < MinPasswordLength {
				return NewValidationError(FieldPassword, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InputValidator) validateUpdateProfileRequest(_ context.Context, request models.UpdateProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if request.Password != nil && len(*request.Password) < MinPasswordLength {
				return NewValidationError(FieldPassword, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InputValidator) validateCreateCatalogItemRequest(_ context.Context, request models.CreateCatalogItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(request.Name) == "" {
				return NewValidationError(FieldName, "must not be blank")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InputValidator) validateRecipe(_ context.Context, recipe models.Recipe, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldTimeMinutes, FieldPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(recipe.Title) == "" {
				return NewValidationError(FieldTitle, "must not be blank")
			}
		case FieldTimeMinutes:
			if recipe.TimeMinutes <= 0 {
				return NewValidationError(FieldTimeMinutes, "must be a positive number of minutes")
			}
		case FieldPrice:
			if recipe.Price < 0 {
				return NewValidationError(FieldPrice, "must not be negative")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
