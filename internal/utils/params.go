package utils

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// PathUUID reads a uuid path parameter.
func PathUUID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.Validation("invalid %s format", name)
	}
	return id, nil
}

// QueryFloat parses an optional float query parameter.
func QueryFloat(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperr.Validation("%s must be a number", name)
	}
	return &f, nil
}

// Page is a page/limit pair read from the query string.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// PageParams parses page and limit, falling back to page 1 and def for
// missing or out-of-range values.
func PageParams(c echo.Context, def, max int) Page {
	p := Page{Page: 1, Limit: def}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= max {
		p.Limit = v
	}
	return p
}
