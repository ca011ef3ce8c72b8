package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// DepartmentScope restricts rows that carry a department_id (workers) to the
// departments of one company.
func DepartmentScope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("departments").
			Select("id").
			Where("company_id = ?", companyID)
		return db.Where("department_id IN (?)", sub)
	}
}
