package validatorx

import (
	"regexp"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

// TagIDMobile validates an Indonesian mobile number (08xx / 628xx / +628xx).
const TagIDMobile = "id_mobile"

var idMobilePattern = regexp.MustCompile(`^(\+?62|0)8(1[1-9]|2[1238]|3[1238]|5[12356789]|7[78]|9[56789]|8[1-9])([\s?|\d]{5,11})$`)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	nv := gpvalidator.New()
	if err := nv.RegisterValidation(TagIDMobile, isIDMobile); err != nil {
		panic(err)
	}
	v = nv
}

func get() *gpvalidator.Validate {
	Init()
	return v
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	return get().Struct(s)
}

// ValidateVar validates a single value against a tag expression
func ValidateVar(field interface{}, tag string) error {
	return get().Var(field, tag)
}

func IsEmail(s string) bool {
	return ValidateVar(s, "email") == nil
}

func IsIDMobile(s string) bool {
	return ValidateVar(s, TagIDMobile) == nil
}

func isIDMobile(fl gpvalidator.FieldLevel) bool {
	return idMobilePattern.MatchString(fl.Field().String())
}
