package model

// Patient is the data structure for a single patient demographic record as
// served by the REST API. Address and Phone may be JSON null.
type Patient struct {
	Id          int     `json:"id"            db:"id"`
	Name        string  `json:"name"          db:"name"`
	DateOfBirth string  `json:"date_of_birth" db:"date_of_birth"`
	Gender      string  `json:"gender"        db:"gender"`
	Address     *string `json:"address"       db:"address"`
	Phone       *string `json:"phone"         db:"phone"`
}
