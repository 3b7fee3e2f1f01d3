package identity

import (
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/yetria/yetria/internal/i18n"
)

// MinPasswordLength is the shortest password accepted locally.
const MinPasswordLength = 6

// Field names a form field that failed validation.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// FieldError is one localized validation failure.
type FieldError struct {
	Key  i18n.Key
	Args []any
}

// ValidationError reports field-level problems found before any request
// is sent.
type ValidationError struct {
	Fields map[Field]FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return "invalid " + strings.Join(names, ", ")
}

// Message returns the localized message for field, or "" if it is valid.
func (e *ValidationError) Message(tr *i18n.Translator, field Field) string {
	fe, ok := e.Fields[field]
	if !ok {
		return ""
	}
	return tr.Tf(fe.Key, fe.Args...)
}

// First returns the message of the first failing field in form order.
func (e *ValidationError) First(tr *i18n.Translator) string {
	for _, f := range []Field{FieldName, FieldEmail, FieldPassword} {
		if msg := e.Message(tr, f); msg != "" {
			return msg
		}
	}
	return ""
}

type validator struct {
	fields map[Field]FieldError
}

func (v *validator) fail(f Field, key i18n.Key, args ...any) {
	if v.fields == nil {
		v.fields = make(map[Field]FieldError)
	}
	if _, exists := v.fields[f]; !exists {
		v.fields[f] = FieldError{Key: key, Args: args}
	}
}

func (v *validator) required(f Field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.fail(f, i18n.KeyValidationRequired)
		return false
	}
	return true
}

func (v *validator) email(value string) {
	if v.required(FieldEmail, value) && !govalidator.IsEmail(strings.TrimSpace(value)) {
		v.fail(FieldEmail, i18n.KeyValidationEmail)
	}
}

func (v *validator) password(value string) {
	if v.required(FieldPassword, value) && len([]rune(value)) < MinPasswordLength {
		v.fail(FieldPassword, i18n.KeyValidationPasswordShort, MinPasswordLength)
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// ValidateSignIn checks the sign-in form.
func ValidateSignIn(email, password string) error {
	var v validator
	v.email(email)
	v.password(password)
	return v.err()
}

// ValidateSignUp checks the registration form.
func ValidateSignUp(in SignUpInput) error {
	var v validator
	v.required(FieldName, in.Name)
	v.email(in.Email)
	v.password(in.Password)
	return v.err()
}
