// Package validate checks and normalizes user input before it reaches a hook.
//
// Each function returns the normalized value or Violations naming the
// offending fields. Hooks trust what they are given.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/checkit/internal/model"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string
	Message string
}

// Violations is returned when one or more fields are invalid.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = violation.Field + ": " + violation.Message
	}
	return strings.Join(parts, "; ")
}

// Field returns the message for field, or "" if it is valid.
func (v Violations) Field(name string) string {
	for _, violation := range v {
		if violation.Field == name {
			return violation.Message
		}
	}
	return ""
}

var rgbHex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return rgbHex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering rgbhex validation: %v", err))
	}
	return v
}

// Todo trims and checks a new todo.
func Todo(in model.CreateTodoInput) (model.CreateTodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.CategoryID = trimOptional(in.CategoryID)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

// TodoUpdate trims and checks a todo patch. An empty category clears it.
func TodoUpdate(patch model.TodoPatch) (model.TodoPatch, error) {
	patch.Title = trimPtr(patch.Title)
	if patch.CategoryID != nil {
		trimmed := strings.TrimSpace(*patch.CategoryID)
		patch.CategoryID = &trimmed
	}
	if err := check(patch); err != nil {
		return patch, err
	}
	return patch, nil
}

// ChecklistItem trims and checks a new checklist item. A blank category
// becomes model.DefaultChecklistCategory.
func ChecklistItem(in model.CreateChecklistItemInput) (model.CreateChecklistItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = model.DefaultChecklistCategory
	}
	in.Quantity = trimOptional(in.Quantity)
	in.Notes = trimOptional(in.Notes)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

// ChecklistItemUpdate trims and checks a checklist item patch.
func ChecklistItemUpdate(patch model.ChecklistItemPatch) (model.ChecklistItemPatch, error) {
	patch.Title = trimPtr(patch.Title)
	patch.Quantity = trimPtr(patch.Quantity)
	patch.Notes = trimPtr(patch.Notes)
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			category = model.DefaultChecklistCategory
		}
		patch.Category = &category
	}
	if err := check(patch); err != nil {
		return patch, err
	}
	return patch, nil
}

// Category trims and checks a new category.
func Category(in model.CreateCategoryInput) (model.CreateCategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.Icon = trimOptional(in.Icon)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

// CategoryUpdate trims and checks a category patch.
func CategoryUpdate(patch model.CategoryPatch) (model.CategoryPatch, error) {
	patch.Name = trimPtr(patch.Name)
	patch.Color = trimPtr(patch.Color)
	patch.Icon = trimPtr(patch.Icon)
	if err := check(patch); err != nil {
		return patch, err
	}
	return patch, nil
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Credentials checks an email and password pair and returns the
// normalized email.
func Credentials(email, password string) (string, error) {
	c := credentials{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := check(c); err != nil {
		return c.Email, err
	}
	return c.Email, nil
}

func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	violations := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return violations
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return "invalid email address"
	case "rgbhex":
		return "invalid color format"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
