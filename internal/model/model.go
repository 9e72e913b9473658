package model

// Patient is the data structure for a single patient demographic record.
// Name, DateOfBirth and Gender are always present on a stored record.
// Address and Phone are nullable; a nil pointer is rendered as JSON null.
type Patient struct {
	Id          int     `json:"id"            db:"id"`
	Name        string  `json:"name"          db:"name"`
	DateOfBirth string  `json:"date_of_birth" db:"date_of_birth"`
	Gender      string  `json:"gender"        db:"gender"`
	Address     *string `json:"address"       db:"address"`
	Phone       *string `json:"phone"         db:"phone"`
}
