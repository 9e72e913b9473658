package store

import (
	"fmt"
	"sync"

	"gitlab.com/medrecord/patients-service/internal/model"
	"gitlab.com/medrecord/patients-service/internal/validate"
)

// NotFoundError reports an operation that referenced a patient id that is not
// in the store.
type NotFoundError struct {
	Id int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Patient with id %d not found", e.Id)
}

// PatientStore owns the collection of patient records and the id counter. All
// incoming field data is run through the validate package before any state
// changes, so an operation either fully applies or leaves the store untouched.
// The store is safe for concurrent use.
type PatientStore struct {
	mu       sync.RWMutex
	patients map[int]model.Patient
	order    []int
	nextId   int
}

// NewPatientStore creates an empty store and seeds it with the given raw field
// mappings. Each seed entry goes through Create, so invalid seed data fails
// construction with the same error a runtime create would produce, and the
// seeded records receive ids 1, 2, 3, ... in seed order.
func NewPatientStore(seed ...map[string]any) (*PatientStore, error) {
	s := &PatientStore{
		patients: make(map[int]model.Patient),
		nextId:   1,
	}
	for _, raw := range seed {
		if _, err := s.Create(raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// List returns all currently stored records in insertion order.
func (s *PatientStore) List() []model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patients := make([]model.Patient, 0, len(s.order))
	for _, id := range s.order {
		patients = append(patients, s.patients[id])
	}
	return patients
}

// Get returns the record with the given id, or a NotFoundError.
func (s *PatientStore) Get(id int) (model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patient, ok := s.patients[id]
	if !ok {
		return model.Patient{}, &NotFoundError{Id: id}
	}
	return patient, nil
}

// Create validates the raw fields in creation mode, assigns the next id and
// stores the new record. On validation failure no id is consumed and the store
// is left unchanged.
func (s *PatientStore) Create(raw map[string]any) (model.Patient, error) {
	fields, err := validate.Normalize(raw, true)
	if err != nil {
		return model.Patient{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	patient := model.Patient{
		Id:          s.nextId,
		Name:        *fields.Name,
		DateOfBirth: *fields.DateOfBirth,
		Gender:      *fields.Gender,
		Address:     fields.Address.Value,
		Phone:       fields.Phone.Value,
	}
	s.patients[patient.Id] = patient
	s.order = append(s.order, patient.Id)
	s.nextId++
	return patient, nil
}

// Update validates the supplied raw fields in update mode and merges them over
// the existing record. Supplied fields overwrite, an explicit null clears
// address or phone, and fields absent from the input keep their prior value.
// The id never changes. On validation failure the existing record is left
// untouched.
func (s *PatientStore) Update(id int, raw map[string]any) (model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patient, ok := s.patients[id]
	if !ok {
		return model.Patient{}, &NotFoundError{Id: id}
	}
	fields, err := validate.Normalize(raw, false)
	if err != nil {
		return model.Patient{}, err
	}
	if fields.Name != nil {
		patient.Name = *fields.Name
	}
	if fields.DateOfBirth != nil {
		patient.DateOfBirth = *fields.DateOfBirth
	}
	if fields.Gender != nil {
		patient.Gender = *fields.Gender
	}
	if fields.Address.Present {
		patient.Address = fields.Address.Value
	}
	if fields.Phone.Present {
		patient.Phone = fields.Phone.Value
	}
	patient.Id = id
	s.patients[id] = patient
	return patient, nil
}

// Delete removes the record with the given id permanently, or returns a
// NotFoundError. Deleted ids are never reused.
func (s *PatientStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return &NotFoundError{Id: id}
	}
	delete(s.patients, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
