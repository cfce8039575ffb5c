// Package repository implements the domain persistence contracts on GORM.
package repository

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// applySearch adds a LIKE condition per requested search field, OR-joined.
// Fields outside the whitelist are dropped silently: the server is the
// authority on what is searchable, not the client.
func applySearch(db *gorm.DB, search string, fields []string, allowed map[string]bool) *gorm.DB {
	if search == "" {
		return db
	}
	var cond *gorm.DB
	pattern := "%" + search + "%"
	for _, field := range fields {
		if !allowed[field] {
			continue
		}
		clause := db.Session(&gorm.Session{NewDB: true}).Where(field+" LIKE ?", pattern)
		if cond == nil {
			cond = clause
		} else {
			cond = cond.Or(field+" LIKE ?", pattern)
		}
	}
	if cond == nil {
		return db
	}
	return db.Where(cond)
}

// applyFilter adds equality conditions from the flat filter object.
// An unknown column is an error rather than a silent no-op so a typo in a
// saved filter does not return unfiltered data.
func applyFilter(db *gorm.DB, filter map[string]any, allowed map[string]bool) (*gorm.DB, error) {
	for field, value := range filter {
		if !allowed[field] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("filter field %q is not filterable", field))
		}
		db = db.Where(field+" = ?", value)
	}
	return db, nil
}

// applyAdvance adds the structured advance conditions.
func applyAdvance(db *gorm.DB, conds []query.AdvanceCondition, allowed map[string]bool) (*gorm.DB, error) {
	for _, c := range conds {
		if !allowed[c.Field] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("advance field %q is not filterable", c.Field))
		}
		switch c.Operator {
		case "eq":
			db = db.Where(c.Field+" = ?", c.Value)
		case "ne":
			db = db.Where(c.Field+" <> ?", c.Value)
		case "gt":
			db = db.Where(c.Field+" > ?", c.Value)
		case "gte":
			db = db.Where(c.Field+" >= ?", c.Value)
		case "lt":
			db = db.Where(c.Field+" < ?", c.Value)
		case "lte":
			db = db.Where(c.Field+" <= ?", c.Value)
		case "like":
			db = db.Where(c.Field+" LIKE ?", fmt.Sprintf("%%%v%%", c.Value))
		case "in":
			db = db.Where(c.Field+" IN ?", c.Value)
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("advance operator %q is not supported", c.Operator))
		}
	}
	return db, nil
}

// applyConditions applies search, filter and advance in one pass.
func applyConditions(db *gorm.DB, p query.Paginate, allowed map[string]bool) (*gorm.DB, error) {
	db = applySearch(db, p.Search, p.SearchFields, allowed)
	db, err := applyFilter(db, p.Filter, allowed)
	if err != nil {
		return nil, err
	}
	return applyAdvance(db, p.Advance, allowed)
}

// applyOrder adds the ORDER BY clause, falling back when the sort spec is
// absent or names a column outside the whitelist.
func applyOrder(db *gorm.DB, p query.Paginate, allowed map[string]bool, fallback string) *gorm.DB {
	if clause := p.OrderClause(allowed); clause != "" {
		return db.Order(clause)
	}
	return db.Order(fallback)
}

// applyPaging adds OFFSET/LIMIT unless the fetch-all sentinel is set.
func applyPaging(db *gorm.DB, p query.Paginate) *gorm.DB {
	if p.FetchAll() {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Limit())
}
