package handler

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// payloadValidator validates request payloads and translates the first
// violation into a human-readable message.
type payloadValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newPayloadValidator() (*payloadValidator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &payloadValidator{
		validate: validate,
		trans:    trans,
	}, nil
}

// Check validates the payload and returns a translated message for the first
// failed field, or an empty string when the payload is valid.
func (v *payloadValidator) Check(payload any) string {
	err := v.validate.Struct(payload)
	if err == nil {
		return ""
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request payload"
	}

	return errs[0].Translate(v.trans)
}
