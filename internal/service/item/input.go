package item

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// CreateItemInput holds the parameters for creating an item.
type CreateItemInput struct {
	// ID is an optional client-proposed identity. Offline clients use it to
	// refer to the item from later queued actions.
	ID         *uuid.UUID
	Name       string
	Quantity   *string
	CategoryID *uuid.UUID
	List       domain.ListType
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validateQuantity(i.Quantity)...)

	if !i.List.IsActive() {
		errs = append(errs, domain.FieldError{Field: "list_type", Message: "must be one of quick_buy, to_buy, inventory"})
	}
	if i.ID != nil && *i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must not be nil uuid"})
	}

	return domain.NewValidationErrors(errs)
}

// UpdateItemInput holds the parameters for a partial item update.
type UpdateItemInput struct {
	ID         uuid.UUID
	Name       *string
	Quantity   *string
	CategoryID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	errs = append(errs, validateQuantity(i.Quantity)...)

	return domain.NewValidationErrors(errs)
}

// changes converts the input into repository changes. An empty quantity is
// kept as "" so the repository clears the column.
func (i UpdateItemInput) changes() domain.ItemChanges {
	c := domain.ItemChanges{CategoryID: i.CategoryID}
	if i.Name != nil {
		name := domain.NormalizeName(*i.Name)
		c.Name = &name
	}
	if i.Quantity != nil {
		q := strings.TrimSpace(*i.Quantity)
		c.Quantity = &q
	}
	return c
}

// MoveItemInput holds the parameters for moving an item between lists.
type MoveItemInput struct {
	ID uuid.UUID
	To domain.ListType
}

// Validate checks all fields and collects all errors.
func (i MoveItemInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.To.IsValid() {
		errs = append(errs, domain.FieldError{Field: "to_list", Message: "must be one of quick_buy, to_buy, inventory, trash"})
	}
	return domain.NewValidationErrors(errs)
}

func validateName(name string) []domain.FieldError {
	n := domain.NormalizeName(name)
	if n == "" {
		return []domain.FieldError{{Field: "name", Message: "required"}}
	}
	if utf8.RuneCountInString(n) > domain.MaxItemNameLength {
		return []domain.FieldError{{Field: "name", Message: "max 255 characters"}}
	}
	return nil
}

func validateQuantity(q *string) []domain.FieldError {
	if q == nil {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*q)) > domain.MaxItemQuantityLength {
		return []domain.FieldError{{Field: "quantity", Message: "max 100 characters"}}
	}
	return nil
}
