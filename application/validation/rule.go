package validation

import (
	"context"

	"github.com/muhammadheryan/user-dashboard/constant"
	"github.com/muhammadheryan/user-dashboard/model"
	validatorx "github.com/muhammadheryan/user-dashboard/utils/validator"
)

// Rule checks a single value. It returns a non-nil failure when the value is
// rejected and an error only when the check itself could not run.
type Rule func(ctx context.Context, value string) (*model.FieldError, error)

// Field binds a submitted value to the rules it must pass, in order.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// UniqueChecker reports whether value is already stored in a unique column.
type UniqueChecker interface {
	Exists(ctx context.Context, column, value string) (bool, error)
}

// Check runs every field independently. Within a field the first failing rule
// stops the remaining ones. Failures are returned in field order.
func Check(ctx context.Context, fields ...Field) (model.ValidationErrors, error) {
	var errs model.ValidationErrors
	for _, f := range fields {
		for _, rule := range f.Rules {
			fail, err := rule(ctx, f.Value)
			if err != nil {
				return nil, err
			}
			if fail != nil {
				fail.Field = f.Name
				errs = append(errs, *fail)
				break
			}
		}
	}
	return errs, nil
}

// Required rejects the raw empty string. Whitespace is not trimmed.
func Required(msg string) Rule {
	return func(_ context.Context, value string) (*model.FieldError, error) {
		if value == "" {
			return &model.FieldError{Kind: constant.ErrEmptyField, Message: msg}, nil
		}
		return nil, nil
	}
}

// Email rejects values that are not a syntactically valid address.
func Email(msg string) Rule {
	return func(_ context.Context, value string) (*model.FieldError, error) {
		if !validatorx.IsEmail(value) {
			return &model.FieldError{Kind: constant.ErrInvalidFormat, Message: msg}, nil
		}
		return nil, nil
	}
}

// IndonesianMobile rejects values that are not an 08xx, 628xx or +628xx mobile number.
func IndonesianMobile(msg string) Rule {
	return func(_ context.Context, value string) (*model.FieldError, error) {
		if !validatorx.IsIDMobile(value) {
			return &model.FieldError{Kind: constant.ErrInvalidFormat, Message: msg}, nil
		}
		return nil, nil
	}
}

// Unique rejects any value already present in column.
func Unique(checker UniqueChecker, column, msg string) Rule {
	return func(ctx context.Context, value string) (*model.FieldError, error) {
		exists, err := checker.Exists(ctx, column, value)
		if err != nil {
			return nil, err
		}
		if exists {
			return &model.FieldError{Kind: constant.ErrDuplicate, Message: msg}, nil
		}
		return nil, nil
	}
}

// UniqueExcept is Unique with the record's own stored value exempted.
// The lookup is skipped when value equals reference since its outcome cannot reject.
func UniqueExcept(checker UniqueChecker, column, reference, msg string) Rule {
	unique := Unique(checker, column, msg)
	return func(ctx context.Context, value string) (*model.FieldError, error) {
		if value == reference {
			return nil, nil
		}
		return unique(ctx, value)
	}
}
