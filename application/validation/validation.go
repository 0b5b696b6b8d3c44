package validation

import (
	"context"

	"github.com/muhammadheryan/user-dashboard/constant"
	"github.com/muhammadheryan/user-dashboard/model"
)

type Validator interface {
	// Validate checks a user form. An empty result means the form passed; the
	// error is reserved for uniqueness lookups that could not reach the database.
	Validate(ctx context.Context, mode constant.FormMode, fields model.UserFields, ref *model.UserReference) (model.ValidationErrors, error)
}

type validatorImpl struct {
	checker UniqueChecker
}

func NewValidator(checker UniqueChecker) Validator {
	return &validatorImpl{checker: checker}
}

func (s *validatorImpl) Validate(ctx context.Context, mode constant.FormMode, fields model.UserFields, ref *model.UserReference) (model.ValidationErrors, error) {
	unique := func(column, msg string) Rule {
		return Unique(s.checker, column, msg)
	}
	if mode == constant.ModeUpdate {
		reference := model.UserReference{}
		if ref != nil {
			reference = *ref
		}
		refs := map[string]string{
			constant.FieldName:  reference.Name,
			constant.FieldEmail: reference.Email,
			constant.FieldPhone: reference.Phone,
		}
		unique = func(column, msg string) Rule {
			return UniqueExcept(s.checker, column, refs[column], msg)
		}
	}

	return Check(ctx,
		Field{
			Name:  constant.FieldName,
			Value: fields.Name,
			Rules: []Rule{
				Required(constant.MsgNameEmpty),
				unique(constant.FieldName, constant.MsgNameDuplicate),
			},
		},
		Field{
			Name:  constant.FieldEmail,
			Value: fields.Email,
			Rules: []Rule{
				Required(constant.MsgEmailEmpty),
				Email(constant.MsgEmailFormat),
				unique(constant.FieldEmail, constant.MsgEmailDuplicate),
			},
		},
		Field{
			Name:  constant.FieldPhone,
			Value: fields.Phone,
			Rules: []Rule{
				Required(constant.MsgPhoneEmpty),
				IndonesianMobile(constant.MsgPhoneFormat),
				unique(constant.FieldPhone, constant.MsgPhoneDuplicate),
			},
		},
		Field{
			Name:  constant.FieldPassword,
			Value: fields.Password,
			Rules: []Rule{
				Required(constant.MsgPasswordEmpty),
			},
		},
	)
}
