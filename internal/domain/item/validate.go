package item

import (
	"strings"

	apperrors "nexus-backend/pkg/errors"
)

// ValidateName checks a prospective item name for duplicates.
//
// Text and url items share one uniqueness scope on Content: a url may not
// reuse the content of a text note. File-like items collide only with the
// same type and an identical FileName. excludeID skips one item so an
// edit does not collide with itself; pass "" when creating.
func ValidateName(items []Item, name string, itemType Type, excludeID string) *apperrors.AppError {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewEmptyNameError()
	}

	for i := range items {
		existing := &items[i]
		if excludeID != "" && existing.ID == excludeID {
			continue
		}

		if itemType.IsTextual() {
			if existing.Type.IsTextual() && existing.Content == name {
				return apperrors.NewDuplicateNameError(name)
			}
		} else {
			if existing.Type == itemType && existing.FileName == name {
				return apperrors.NewDuplicateFileError(name)
			}
		}
	}
	return nil
}
