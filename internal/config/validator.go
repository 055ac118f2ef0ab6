package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// translations are the messages of a failed config key. {0} is the key, {1} the tag param.
var translations = map[string]string{
	"required": "{0} is required",
	"http_url": "{0} must be an http or https URL of the statistics API",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"gt":       "{0} must be greater than {1}",
	"file":     "{0} must be an existing and readable file",
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations > %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("validate.RegisterValidation(file) > %w", err)
	}
	for tag, text := range translations {
		if err := validate.RegisterTranslation(tag, trans, registerKeyMessage(tag, text), translateKey); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterTranslation(%s) > %w", tag, err)
		}
	}

	return validate, trans, nil
}

func registerKeyMessage(tag, text string) validator.RegisterTranslationsFunc {
	return func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}
}

// translateKey names the failed field by its dotted config key, e.g. "api.concurrency".
func translateKey(ut ut.Translator, fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	t, err := ut.T(fe.Tag(), key, fe.Param())
	if err != nil {
		return fe.Error()
	}
	return t
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	// owner read bit
	return info.Mode().Perm()&0o400 != 0
}
