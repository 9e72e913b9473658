package main

import (
	"gitlab.com/medrecord/patients-service/internal/service"
	"gitlab.com/medrecord/patients-service/internal/store"
)

// Single-file quick start: serves a pre-populated in-memory patient store on
// localhost:8080. For the configurable variant see cmd/service.
//
// Usage example:
// > go run patients-service.go
func main() {
	patients, err := store.NewPatientStore(initialPatients()...)
	if err != nil {
		panic(err)
	}
	service.SetupPatientStore(patients)
	router := service.SetupHttpRouter()
	router.Run("localhost:8080")
}

// initialPatients returns the raw field mappings for the initial test data.
// They pass through the same validation as records posted via the REST API.
func initialPatients() []map[string]any {
	return []map[string]any{
		{
			"name":          "Dirk Krummacker",
			"date_of_birth": "1974-11-29",
			"gender":        "male",
			"phone":         "+420 123 456 789",
		},
		{
			"name":          "Pavla Krummackerova",
			"date_of_birth": "1980-01-27",
			"gender":        "female",
			"phone":         "+420 023 454 244",
		},
		{
			"name":          "Adam Krummacker",
			"date_of_birth": "2009-03-31",
			"gender":        "male",
			"address":       "Na Prikope 12, Praha",
		},
		{
			"name":          "David Krummacker",
			"date_of_birth": "2011-12-11",
			"gender":        "male",
		},
	}
}
