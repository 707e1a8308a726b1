package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("notfile", isNotFile); err != nil {
		return nil, nil, fmt.Errorf("failed to register notfile validation: %w", err)
	}
	if err := validate.RegisterTranslation("notfile", trans, func(ut ut.Translator) error {
		return ut.Add("notfile", "{0} must be a directory, not a file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notfile", fe.Field())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register notfile translation: %w", err)
	}

	return validate, trans, nil
}

// isNotFile accepts paths that do not exist yet or are directories.
func isNotFile(fl validator.FieldLevel) bool {
	info, err := os.Stat(fl.Field().String())
	if err != nil {
		return true
	}
	return info.IsDir()
}

// Validate checks the configuration. Database settings are only checked for the mysql cache backend.
func Validate(cfg Config) error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	errs := translate(validate.Struct(cfg), trans, "")
	if cfg.Cache.Backend == CacheBackendMySQL {
		errs = append(errs, translate(validate.Struct(cfg.Database), trans, "database.")...)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func translate(err error, trans ut.Translator, prefix string) []error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []error{err}
	}

	errs := make([]error, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errs = append(errs, errors.New(prefix+fe.Translate(trans)))
	}
	return errs
}
