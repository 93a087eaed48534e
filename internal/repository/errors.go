package repository

import "errors"

// 通用表访问错误
var (
	ErrUnknownTable          = errors.New("unknown table")
	ErrUnknownColumn         = errors.New("unknown column")
	ErrColumnNotWritable     = errors.New("column not writable")
	ErrWhereRequired         = errors.New("where condition required")
	ErrInvalidWhere          = errors.New("invalid where condition")
	ErrInvalidOrderBy        = errors.New("invalid order_by")
	ErrEmptyData             = errors.New("empty data")
	ErrInvalidData           = errors.New("invalid data")
	ErrSoftDeleteUnsupported = errors.New("soft delete unsupported")
	ErrVariantComboExists    = errors.New("variant combination already exists")
)
