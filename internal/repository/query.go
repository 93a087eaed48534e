package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// dialect 数据库方言，未知驱动按 sqlite 处理
type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectMySQL    dialect = "mysql"
	dialectPostgres dialect = "postgres"
)

func dialectOf(db *gorm.DB) dialect {
	if db == nil || db.Dialector == nil {
		return dialectSQLite
	}
	switch strings.ToLower(db.Dialector.Name()) {
	case "postgres", "postgresql":
		return dialectPostgres
	case "mysql":
		return dialectMySQL
	default:
		return dialectSQLite
	}
}

// jsonText JSON 列中某个键的文本值
func (d dialect) jsonText(column, key string) string {
	switch d {
	case dialectPostgres:
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	case dialectMySQL:
		return fmt.Sprintf("JSON_UNQUOTE(JSON_EXTRACT(%s, '$.\"%s\"'))", column, key)
	default:
		return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, key)
	}
}

// day 时间列按天截断为 YYYY-MM-DD 文本
func (d dialect) day(column string) string {
	switch d {
	case dialectPostgres:
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	case dialectMySQL:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", column)
	default:
		return fmt.Sprintf("CAST(date(%s) AS TEXT)", column)
	}
}

func (d dialect) likeOp() string {
	if d == dialectPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

// searchCondition 普通列与 JSON 键做 OR 模糊匹配，返回占位符个数
func (d dialect) searchCondition(columns []string, jsonKeys map[string][]string) (string, int) {
	op := d.likeOp()
	parts := make([]string, 0, len(columns)+len(jsonKeys))
	for _, column := range columns {
		if column = strings.TrimSpace(column); column != "" {
			parts = append(parts, column+" "+op+" ?")
		}
	}
	jsonColumns := make([]string, 0, len(jsonKeys))
	for column := range jsonKeys {
		jsonColumns = append(jsonColumns, column)
	}
	sort.Strings(jsonColumns)
	for _, column := range jsonColumns {
		for _, key := range jsonKeys[column] {
			parts = append(parts, d.jsonText(column, key)+" "+op+" ?")
		}
	}
	return strings.Join(parts, " OR "), len(parts)
}

// applySearch 追加模糊搜索，search 为空时原样返回
func applySearch(query *gorm.DB, search string, columns []string, jsonKeys map[string][]string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return query
	}
	condition, n := dialectOf(query).searchCondition(columns, jsonKeys)
	if n == 0 {
		return query
	}
	args := make([]interface{}, n)
	for i := range args {
		args[i] = "%" + search + "%"
	}
	return query.Where("("+condition+")", args...)
}

// listSpec 列表排序与分页参数
type listSpec struct {
	page     int
	pageSize int // 非正数表示不分页
	orderBy  string
	sortable []string
	fallback string
}

// order orderBy 形如 "column" 或 "column desc"，列不在白名单时使用 fallback
func (s listSpec) order() string {
	fields := strings.Fields(s.orderBy)
	if len(fields) == 0 || len(fields) > 2 {
		return s.fallback
	}
	column := strings.ToLower(fields[0])
	allowed := false
	for _, item := range s.sortable {
		if item == column {
			allowed = true
			break
		}
	}
	if !allowed {
		return s.fallback
	}
	direction := "ASC"
	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case "ASC":
		case "DESC":
			direction = "DESC"
		default:
			return s.fallback
		}
	}
	return column + " " + direction
}

// findPage 统计总数后按排序与分页取一页
func findPage[T any](query *gorm.DB, spec listSpec) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if order := spec.order(); order != "" {
		query = query.Order(order)
	}
	if spec.pageSize > 0 {
		page := spec.page
		if page < 1 {
			page = 1
		}
		query = query.Limit(spec.pageSize).Offset((page - 1) * spec.pageSize)
	}
	items := make([]T, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// firstOrNil 取第一条记录，不存在时返回 nil 而非错误
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var item T
	err := query.First(&item, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func findAll[T any](query *gorm.DB) ([]T, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func count(query *gorm.DB) (int64, error) {
	var n int64
	err := query.Count(&n).Error
	return n, err
}
