package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func NewCategory(name, color, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	color = strings.TrimSpace(color)
	if color != "" {
		if !ValidColor(color) {
			return nil, ErrInvalidColor
		}
	}

	return &Category{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
		Icon:  strings.TrimSpace(icon),
	}, nil
}
