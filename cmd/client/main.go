package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"gitlab.com/medrecord/patients-service/pkg/model"
)

const serverPort = 8080

// Measures the latency of the four CRUD endpoints for different numbers of
// records in the store.
//
// Usage example on the command line:
// > go run main.go
func main() {
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	jsonBody := []byte(`{
		"name": "Marcus Antonius",
		"date_of_birth": "0027-11-09",
		"gender": "male",
		"phone": "+39 999 777 555"
	}`)
	updateBody := []byte(`{
		"address": "Via Appia 1, Roma"
	}`)
	for _, loops := range sizes {
		firstID, _ := sendPostRequest(bytes.NewReader(jsonBody))
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				_, d := sendPostRequest(bytes.NewReader(jsonBody))
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int) int64 {
				return sendPutGetDeleteRequest(id, http.MethodPut, bytes.NewReader(updateBody))
			}
			callInLoop(firstID, loops, f)
		}
		{
			// GET requests
			f := func(id int) int64 {
				return sendPutGetDeleteRequest(id, http.MethodGet, nil)
			}
			callInLoop(firstID, loops, f)
		}
		{
			// DELETE requests
			f := func(id int) int64 {
				return sendPutGetDeleteRequest(id, http.MethodDelete, nil)
			}
			callInLoop(firstID, loops, f)
		}
		sendPutGetDeleteRequest(firstID, http.MethodDelete, nil)
		fmt.Println()
	}
}

func callInLoop(firstID int, loops int, f func(id int) int64) {
	ids := createRandomSliceWithIDs(firstID+1, loops)
	var duration int64
	for _, id := range ids {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(loops*1000))
}

func createRandomSliceWithIDs(firstID int, loops int) []int {
	ids := make([]int, 0, loops)
	for i := 0; i < loops; i++ {
		ids = append(ids, firstID+i)
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

func sendPostRequest(bodyReader io.Reader) (int, int64) {
	requestURL := fmt.Sprintf("http://localhost:%d/patients", serverPort)
	resBody, duration := sendRequest(http.MethodPost, requestURL, bodyReader)
	var patient model.Patient
	err := json.Unmarshal(resBody, &patient)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return patient.Id, duration
}

func sendPutGetDeleteRequest(id int, method string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/patients/%d", serverPort, id)
	_, duration := sendRequest(method, requestURL, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
