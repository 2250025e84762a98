package domain

import "time"

func setString(row Row, column string, v *string) {
	if v != nil {
		row[column] = *v
	}
}

func setFloat(row Row, column string, v *float64) {
	if v != nil {
		row[column] = *v
	}
}

func setInt(row Row, column string, v *int) {
	if v != nil {
		row[column] = *v
	}
}

func setTime(row Row, column string, v *time.Time) {
	if v != nil {
		row[column] = v.UTC()
	}
}
