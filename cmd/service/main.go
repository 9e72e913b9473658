package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gitlab.com/medrecord/patients-service/internal/archive"
	"gitlab.com/medrecord/patients-service/internal/service"
	"gitlab.com/medrecord/patients-service/internal/store"
)

// Usage example on the command line:
// > PORT=8080 SEED_FILE=../../scripts/seed.json GIN_MODE=release GIN_LOGGING=OFF go run main.go
//
// Setting DBHOST (plus DBUSER and DBPWD) additionally enables the /archive
// endpoint for exporting the store to a MySQL database.
func main() {
	godotenv.Load()
	seed, err := readSeedFile(os.Getenv("SEED_FILE"))
	if err != nil {
		fmt.Println("could not read seed file", err)
		panic(err)
	}
	patients, err := store.NewPatientStore(seed...)
	if err != nil {
		fmt.Println("invalid seed data", err)
		panic(err)
	}
	service.SetupPatientStore(patients)
	if os.Getenv("DBHOST") != "" {
		snapshots, errArchive := archive.NewArchive(archive.CreateDatabase())
		if errArchive != nil {
			fmt.Println("could not prepare archive", errArchive)
			panic(errArchive)
		}
		service.SetupArchive(snapshots)
	}
	router := service.SetupHttpRouter()
	_, err = strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		fmt.Println("could not parse PORT env variable", err)
		panic(err)
	}
	router.Run(":" + os.Getenv("PORT"))
}

// readSeedFile parses the JSON file with the initial patient records. The file
// holds an array of raw field mappings that are run through the store's create
// validation, so a broken seed file stops the service at startup.
func readSeedFile(path string) ([]map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed []map[string]any
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, err
	}
	return seed, nil
}
