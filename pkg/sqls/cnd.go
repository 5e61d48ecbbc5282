package sqls

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Paging struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func (p *Paging) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type whereClause struct {
	Query string
	Args  []interface{}
}

// Cnd is a small query condition builder over GORM, shared by all the
// repositories.
type Cnd struct {
	SelectCols []string
	Wheres     []whereClause
	Orders     []string
	Paging     *Paging
}

func NewCnd() *Cnd {
	return &Cnd{}
}

func (c *Cnd) Cols(cols ...string) *Cnd {
	c.SelectCols = append(c.SelectCols, cols...)
	return c
}

func (c *Cnd) Where(query string, args ...interface{}) *Cnd {
	c.Wheres = append(c.Wheres, whereClause{Query: query, Args: args})
	return c
}

func (c *Cnd) Eq(column string, value interface{}) *Cnd {
	return c.Where(column+" = ?", value)
}

func (c *Cnd) In(column string, values interface{}) *Cnd {
	return c.Where(column+" IN (?)", values)
}

func (c *Cnd) Asc(column string) *Cnd {
	c.Orders = append(c.Orders, column+" ASC")
	return c
}

func (c *Cnd) Desc(column string) *Cnd {
	c.Orders = append(c.Orders, column+" DESC")
	return c
}

func (c *Cnd) Limit(limit int) *Cnd {
	return c.Page(1, limit)
}

func (c *Cnd) Page(page, limit int) *Cnd {
	if c.Paging == nil {
		c.Paging = &Paging{Page: page, Limit: limit}
	} else {
		c.Paging.Page = page
		c.Paging.Limit = limit
	}
	return c
}

func (c *Cnd) Build(db *gorm.DB) *gorm.DB {
	ret := db
	if len(c.SelectCols) > 0 {
		ret = ret.Select(c.SelectCols)
	}
	for _, w := range c.Wheres {
		ret = ret.Where(w.Query, w.Args...)
	}
	for _, o := range c.Orders {
		ret = ret.Order(o)
	}
	if c.Paging != nil && c.Paging.Limit > 0 {
		ret = ret.Limit(c.Paging.Limit).Offset(c.Paging.Offset())
	}
	return ret
}

func (c *Cnd) Find(db *gorm.DB, out interface{}) {
	if err := c.Build(db).Find(out).Error; err != nil {
		zap.L().Error("cnd find error", zap.Error(err))
	}
}

func (c *Cnd) FindOne(db *gorm.DB, out interface{}) error {
	return c.Build(db).Take(out).Error
}

// Count ignores paging and ordering so the total reflects the whole
// predicate.
func (c *Cnd) Count(db *gorm.DB, model interface{}) int64 {
	ret := db.Model(model)
	for _, w := range c.Wheres {
		ret = ret.Where(w.Query, w.Args...)
	}
	var count int64
	if err := ret.Count(&count).Error; err != nil {
		return 0
	}
	return count
}
