package models

import (
	"time"

	"gorm.io/datatypes"
)

// JSON 任意键值对象列，设置值与审计过滤条件共用
type JSON = datatypes.JSONMap

// Setting 后台可编辑的键值设置，键名见 constants.SettingKey*
type Setting struct {
	Key       string    `gorm:"primarykey;type:varchar(100)" json:"key"`
	ValueJSON JSON      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
