package model

import "time"

// RoleModel mirrors the 'roles' table. Rows are inserted on first use.
type RoleModel struct {
	Name      string `gorm:"type:varchar(20);primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
