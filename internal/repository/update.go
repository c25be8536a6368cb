package repository

import "gorm.io/gorm"

// updateColumns applies fields to the rows matched by scoped, which must
// carry a Model and a Where clause.
func updateColumns(scoped *gorm.DB, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		var count int64
		err := scoped.Count(&count).Error
		return count, err
	}
	result := scoped.Updates(fields)
	return result.RowsAffected, result.Error
}
