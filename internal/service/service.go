package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gitlab.com/medrecord/patients-service/internal/archive"
	"gitlab.com/medrecord/patients-service/internal/store"
	"gitlab.com/medrecord/patients-service/internal/validate"
)

// patients is the record store against which all handlers operate.
var patients *store.PatientStore

// snapshots is the optional archive for exporting the store to a database. It
// stays nil unless SetupArchive is called, in which case the /archive endpoint
// is registered.
var snapshots *archive.Archive

// SetupPatientStore initializes the handlers with the specified record store.
// The store argument can be a freshly seeded store for production use or a
// prepared store within unit tests.
func SetupPatientStore(s *store.PatientStore) {
	patients = s
}

// SetupArchive initializes the optional database archive. Calling it before
// SetupHttpRouter enables the /archive endpoint.
func SetupArchive(a *archive.Archive) {
	snapshots = a
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
	} else {
		router = gin.Default()
	}
	router.GET("/patients", findPatients)
	router.POST("/patients", createPatient)
	router.GET("/patients/:id", findPatientByID)
	router.PUT("/patients/:id", updatePatientByID)
	router.DELETE("/patients/:id", deletePatientByID)
	if snapshots != nil {
		router.POST("/archive", archivePatients)
	}
	return router
}

// abortWithStoreError translates an error from the record store into the
// matching HTTP response: 404 for an unknown id, 422 for input that failed
// validation, and 500 for anything unexpected.
func abortWithStoreError(c *gin.Context, err error) {
	var notFound *store.NotFoundError
	var invalid *validate.ValidationError
	var wrongType *validate.TypeError
	switch {
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.As(err, &invalid), errors.As(err, &wrongType):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// parseID converts the id parameter of the request URL into an integer. A
// non-numeric id cannot refer to any patient, so the request is answered with
// the NOT FOUND status code without consulting the store.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// findPatients responds with the list of all patients as JSON, in the order in
// which the records were created.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/patients"
func findPatients(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, patients.List())
}

// createPatient inserts the patient specified in the request's JSON into the
// store. The body is decoded into a plain map so that the validator sees
// exactly which fields were supplied, which were null, and which carry a wrong
// type. It responds with the full record including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/patients --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Jane Doe", "date_of_birth": "1990-05-12", "gender": "female", "phone": "0815"}'
func createPatient(c *gin.Context) {
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	patient, err := patients.Create(raw)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, patient)
}

// findPatientByID locates the patient whose ID value matches the id parameter
// of the request URL, then returns that patient as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/patients/56
func findPatientByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	patient, err := patients.Get(id)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, patient)
}

// updatePatientByID updates the patient whose ID value matches the id parameter
// of the request URL, applies the values specified in the JSON (and only
// those), and finally responds with the new version of the record. A JSON null
// clears the address or phone field; omitting a field keeps its prior value.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/patients/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"phone": "81970"}'
//	> curl http://localhost:8080/patients/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"address": null}'
func updatePatientByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	patient, err := patients.Update(id, raw)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, patient)
}

// deletePatientByID deletes the patient whose ID value matches the id parameter
// of the request URL from the store.
//
// Example REST API call:
//
//	> curl http://localhost:8080/patients/56 --request "DELETE"
func deletePatientByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := patients.Delete(id); err != nil {
		abortWithStoreError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "patient deleted"})
}

// archivePatients exports all currently stored records to the database archive
// and responds with the number of archived records.
//
// Example REST API call:
//
//	> curl http://localhost:8080/archive --request "POST"
func archivePatients(c *gin.Context) {
	count, err := snapshots.Export(patients.List())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"archived": count})
}
