package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// 任何写操作都不接受的列
var protectedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"is_deleted": true,
}

var allTableActions = []string{
	constants.RPCActionGet,
	constants.RPCActionInsert,
	constants.RPCActionUpdate,
	constants.RPCActionDelete,
	constants.RPCActionSoftDelete,
}

// 只允许软删除的表
var softDeleteOnlyActions = []string{
	constants.RPCActionGet,
	constants.RPCActionInsert,
	constants.RPCActionUpdate,
	constants.RPCActionSoftDelete,
}

// TableSpec 描述一张可通过通用接口访问的表
type TableSpec struct {
	Name       string
	New        func() interface{}
	NewSlice   func() interface{}
	Actions    map[string]bool
	Writable   map[string]bool // 为空表示除保护列外全部可写
	InsertOnly map[string]bool // 插入后不可再修改的列

	guardInsert func(tx *gorm.DB, row interface{}) error
	cascade     func(tx *gorm.DB, ids []uint) error
}

// Allows 判断表是否开放指定动作
func (s TableSpec) Allows(action string) bool {
	return s.Actions[action]
}

// tableOf 根据模型类型构建表描述
func tableOf[T any](actions []string, writable ...string) TableSpec {
	var zero T
	name := ""
	if tabler, ok := interface{}(&zero).(schema.Tabler); ok {
		name = tabler.TableName()
	}
	spec := TableSpec{
		Name:     name,
		New:      func() interface{} { return new(T) },
		NewSlice: func() interface{} { return &[]T{} },
		Actions:  make(map[string]bool, len(actions)),
	}
	for _, action := range actions {
		spec.Actions[action] = true
	}
	if len(writable) > 0 {
		spec.Writable = make(map[string]bool, len(writable))
		for _, column := range writable {
			spec.Writable[column] = true
		}
	}
	return spec
}

func (s TableSpec) withInsertOnly(columns ...string) TableSpec {
	s.InsertOnly = make(map[string]bool, len(columns))
	for _, column := range columns {
		s.InsertOnly[column] = true
	}
	return s
}

func (s TableSpec) withInsertGuard(fn func(tx *gorm.DB, row interface{}) error) TableSpec {
	s.guardInsert = fn
	return s
}

// withCascade 删除或软删除后按主键清理关联行，与删除在同一事务
func (s TableSpec) withCascade(fn func(tx *gorm.DB, ids []uint) error) TableSpec {
	s.cascade = fn
	return s
}

// DefaultTables 返回通用接口开放的表
func DefaultTables() []TableSpec {
	return []TableSpec{
		tableOf[models.Attribute](allTableActions),
		tableOf[models.AttributeOption](allTableActions),
		tableOf[models.Category](allTableActions),
		tableOf[models.CategoryStyle](allTableActions),
		tableOf[models.CategoryMetal](allTableActions),
		tableOf[models.Product](allTableActions).withCascade(deleteProductVariants),
		tableOf[models.ProductVariant](allTableActions).
			withInsertOnly("product_id", "metal_option_id", "diamond_option_id", "size_option_id").
			withInsertGuard(guardVariantInsert),
		tableOf[models.HomepageSection](softDeleteOnlyActions).withCascade(softDeleteSectionCategories),
		tableOf[models.CollectionCategory](softDeleteOnlyActions),
		tableOf[models.Blog](allTableActions),
		tableOf[models.FAQ](allTableActions),
		tableOf[models.Review](allTableActions),
		tableOf[models.Enquiry](allTableActions),
		tableOf[models.Order](allTableActions),
		tableOf[models.User](
			[]string{constants.RPCActionGet, constants.RPCActionUpdate, constants.RPCActionSoftDelete},
			"name", "phone", "business_name", "gst_number", "is_verified", "vendor_status", "reject_reason",
		),
	}
}

// guardVariantInsert 同一商品下 (metal|none, diamond|none, size) 组合唯一
func guardVariantInsert(tx *gorm.DB, row interface{}) error {
	variant, ok := row.(*models.ProductVariant)
	if !ok {
		return nil
	}
	if variant.ProductID == 0 || variant.SizeOptionID == 0 {
		return fmt.Errorf("%w: product_id and size_option_id are required", ErrInvalidData)
	}
	return ensureVariantComboFree(tx, variant)
}

func deleteProductVariants(tx *gorm.DB, ids []uint) error {
	return tx.Where("product_id IN ?", ids).Delete(&models.ProductVariant{}).Error
}

func softDeleteSectionCategories(tx *gorm.DB, ids []uint) error {
	return tx.Where("section_id IN ?", ids).Delete(&models.CollectionCategory{}).Error
}

// TableQuery 通用查询参数
type TableQuery struct {
	Where   map[string]interface{}
	OrderBy string
	Limit   int
}

// TableRepository 通用表访问接口
type TableRepository interface {
	Spec(table string) (TableSpec, bool)
	Tables() []string
	Get(table string, query TableQuery) (interface{}, error)
	Insert(table string, data map[string]interface{}) (uint, error)
	Update(table string, where, data map[string]interface{}) (int64, error)
	Delete(table string, where map[string]interface{}) (int64, error)
	SoftDelete(table string, where map[string]interface{}) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) TableRepository
}

// GormTableRepository GORM 实现
type GormTableRepository struct {
	db      *gorm.DB
	specs   map[string]TableSpec
	schemas *sync.Map
}

// NewTableRepository 创建通用表仓库
func NewTableRepository(db *gorm.DB, specs []TableSpec) *GormTableRepository {
	registry := make(map[string]TableSpec, len(specs))
	for _, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			continue
		}
		registry[spec.Name] = spec
	}
	return &GormTableRepository{db: db, specs: registry, schemas: &sync.Map{}}
}

// WithTx 绑定事务
func (r *GormTableRepository) WithTx(tx *gorm.DB) TableRepository {
	if tx == nil {
		return r
	}
	return &GormTableRepository{db: tx, specs: r.specs, schemas: r.schemas}
}

// Transaction 执行事务
func (r *GormTableRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Spec 获取表描述
func (r *GormTableRepository) Spec(table string) (TableSpec, bool) {
	spec, ok := r.specs[strings.TrimSpace(table)]
	return spec, ok
}

// Tables 返回已注册表名（有序）
func (r *GormTableRepository) Tables() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 查询未软删除的行
func (r *GormTableRepository) Get(table string, query TableQuery) (interface{}, error) {
	spec, sch, err := r.resolve(table)
	if err != nil {
		return nil, err
	}
	where, err := normalizeWhere(sch, query.Where)
	if err != nil {
		return nil, err
	}
	orders, err := parseOrderBy(sch, query.OrderBy)
	if err != nil {
		return nil, err
	}

	tx := r.db.Model(spec.New())
	if len(where) > 0 {
		tx = tx.Where(where)
	}
	for _, order := range orders {
		tx = tx.Order(order)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	dest := spec.NewSlice()
	if err := tx.Find(dest).Error; err != nil {
		return nil, err
	}
	return reflect.ValueOf(dest).Elem().Interface(), nil
}

// Insert 插入一行并返回主键
func (r *GormTableRepository) Insert(table string, data map[string]interface{}) (uint, error) {
	spec, sch, err := r.resolve(table)
	if err != nil {
		return 0, err
	}
	values, err := filterWritable(spec, sch, data, false)
	if err != nil {
		return 0, err
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	row := spec.New()
	if err := json.Unmarshal(raw, row); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if spec.guardInsert != nil {
			if err := spec.guardInsert(tx, row); err != nil {
				return err
			}
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return 0, err
	}
	return primaryKeyOf(sch, row), nil
}

// Update 按条件更新指定列，返回影响行数
func (r *GormTableRepository) Update(table string, where, data map[string]interface{}) (int64, error) {
	spec, sch, err := r.resolve(table)
	if err != nil {
		return 0, err
	}
	conditions, err := requireWhere(sch, where)
	if err != nil {
		return 0, err
	}
	values, err := filterWritable(spec, sch, data, true)
	if err != nil {
		return 0, err
	}
	for column, value := range values {
		encoded, err := encodeColumnValue(value)
		if err != nil {
			return 0, err
		}
		values[column] = encoded
	}

	result := r.db.Model(spec.New()).Where(conditions).Updates(values)
	return result.RowsAffected, result.Error
}

// Delete 按条件物理删除
func (r *GormTableRepository) Delete(table string, where map[string]interface{}) (int64, error) {
	spec, sch, err := r.resolve(table)
	if err != nil {
		return 0, err
	}
	conditions, err := requireWhere(sch, where)
	if err != nil {
		return 0, err
	}
	return r.deleteWithCascade(spec, sch, conditions, true)
}

// SoftDelete 按条件将 is_deleted 置为 1
func (r *GormTableRepository) SoftDelete(table string, where map[string]interface{}) (int64, error) {
	spec, sch, err := r.resolve(table)
	if err != nil {
		return 0, err
	}
	if _, ok := sch.FieldsByDBName["is_deleted"]; !ok {
		return 0, ErrSoftDeleteUnsupported
	}
	conditions, err := requireWhere(sch, where)
	if err != nil {
		return 0, err
	}
	return r.deleteWithCascade(spec, sch, conditions, false)
}

// deleteWithCascade 先取出命中行主键，删除后交给表的级联清理
func (r *GormTableRepository) deleteWithCascade(spec TableSpec, sch *schema.Schema, conditions map[string]interface{}, hard bool) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if hard {
			tx = tx.Unscoped().Session(&gorm.Session{})
		}
		var ids []uint
		if spec.cascade != nil && sch.PrioritizedPrimaryField != nil {
			if err := tx.Model(spec.New()).Where(conditions).Pluck(sch.PrioritizedPrimaryField.DBName, &ids).Error; err != nil {
				return err
			}
		}
		result := tx.Where(conditions).Delete(spec.New())
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if len(ids) == 0 {
			return nil
		}
		return spec.cascade(tx, ids)
	})
	return affected, err
}

func (r *GormTableRepository) resolve(table string) (TableSpec, *schema.Schema, error) {
	spec, ok := r.Spec(table)
	if !ok {
		return TableSpec{}, nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if cached, ok := r.schemas.Load(spec.Name); ok {
		return spec, cached.(*schema.Schema), nil
	}
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(spec.New()); err != nil {
		return TableSpec{}, nil, err
	}
	r.schemas.Store(spec.Name, stmt.Schema)
	return spec, stmt.Schema, nil
}

func requireWhere(sch *schema.Schema, where map[string]interface{}) (map[string]interface{}, error) {
	if len(where) == 0 {
		return nil, ErrWhereRequired
	}
	return normalizeWhere(sch, where)
}

func normalizeWhere(sch *schema.Schema, where map[string]interface{}) (map[string]interface{}, error) {
	if len(where) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(where))
	for column, value := range where {
		column = strings.TrimSpace(column)
		if _, ok := sch.FieldsByDBName[column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
		normalized, err := normalizeWhereValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, column)
		}
		out[column] = normalized
	}
	return out, nil
}

// normalizeWhereValue JSON 数字统一转为整数，数组视为 IN 条件
func normalizeWhereValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v), nil
		}
		return v, nil
	case []interface{}:
		items := make([]interface{}, 0, len(v))
		for _, item := range v {
			normalized, err := normalizeWhereValue(item)
			if err != nil {
				return nil, err
			}
			if _, nested := normalized.([]interface{}); nested {
				return nil, ErrInvalidWhere
			}
			items = append(items, normalized)
		}
		return items, nil
	case map[string]interface{}:
		return nil, ErrInvalidWhere
	default:
		return v, nil
	}
}

// parseOrderBy 解析 "col [ASC|DESC], ..." 形式的排序
func parseOrderBy(sch *schema.Schema, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"id ASC"}, nil
	}
	parts := strings.Split(raw, ",")
	orders := make([]string, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrderBy, raw)
		}
		if _, ok := sch.FieldsByDBName[fields[0]]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, fields[0])
		}
		direction := "ASC"
		if len(fields) == 2 {
			switch strings.ToUpper(fields[1]) {
			case "ASC":
			case "DESC":
				direction = "DESC"
			default:
				return nil, fmt.Errorf("%w: %s", ErrInvalidOrderBy, raw)
			}
		}
		orders = append(orders, fields[0]+" "+direction)
	}
	return orders, nil
}

func filterWritable(spec TableSpec, sch *schema.Schema, data map[string]interface{}, update bool) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(data))
	for column, value := range data {
		column = strings.TrimSpace(column)
		if protectedColumns[column] {
			continue
		}
		field, ok := sch.FieldsByDBName[column]
		if !ok || (!field.Creatable && !field.Updatable) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
		if (spec.Writable != nil && !spec.Writable[column]) || (update && spec.InsertOnly[column]) {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotWritable, column)
		}
		values[column] = value
	}
	if len(values) == 0 {
		return nil, ErrEmptyData
	}
	return values, nil
}

// encodeColumnValue JSON 列接受对象与数组，写入前序列化
func encodeColumnValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}, []interface{}:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return string(raw), nil
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v), nil
		}
		return v, nil
	default:
		return v, nil
	}
}

func primaryKeyOf(sch *schema.Schema, row interface{}) uint {
	field := sch.PrioritizedPrimaryField
	if field == nil {
		return 0
	}
	value, zero := field.ValueOf(context.Background(), reflect.ValueOf(row))
	if zero {
		return 0
	}
	switch id := value.(type) {
	case uint:
		return id
	case uint64:
		return uint(id)
	case int64:
		return uint(id)
	case int:
		return uint(id)
	default:
		return 0
	}
}
