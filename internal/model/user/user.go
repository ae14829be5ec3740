package user

import "time"

// User 用户模型(映射到auth_users表,只读)
// 账号由认证服务维护，本服务只读取
type User struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Username  string    `gorm:"column:username" json:"username"`
	Email     string    `gorm:"column:email" json:"email"`
	Role      string    `gorm:"column:role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "auth_users"
}
