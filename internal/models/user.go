package models

// User represents a registered account holder.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required"`
	Email     string `json:"email" form:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string `json:"-" form:"password" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, no json tag for security
}

// TableName overrides GORM's default pluralization.
func (User) TableName() string {
	return "users"
}
