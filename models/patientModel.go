package models

import (
	"time"
)

// Patient status values. A patient belongs to the reception queue while the
// status is PatientWaiting or PatientCheckedIn.
const (
	PatientWaiting   = "waiting"
	PatientCheckedIn = "checked-in"
	PatientCompleted = "completed"
)

// PatientStatuses lists every valid patient status.
var PatientStatuses = []string{PatientWaiting, PatientCheckedIn, PatientCompleted}

// ValidPatientStatus reports whether status is one of the enumerated values.
func ValidPatientStatus(status string) bool {
	for _, s := range PatientStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// EmergencyContact model
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Patient model. The upstream gateway owns identity and persistence; this is
// the shape held in the reception cache.
type Patient struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	DateOfBirth      string           `json:"date_of_birth"`
	Age              int              `json:"age"`
	Sex              string           `json:"sex"`
	GenderIdentity   string           `json:"gender_identity"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Address          string           `json:"address"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	AssignedDoctor   string           `json:"assigned_doctor"`
	RegisteredAt     time.Time        `json:"registered_at"`
	Status           string           `json:"status"`
	FollowUpDate     string           `json:"follow_up_date,omitempty"`
	MedicalNotes     string           `json:"medical_notes,omitempty"`
	IsNew            bool             `json:"is_new"`
}

// FullName returns the patient's display name as used on invoices.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// InQueue reports whether the patient appears in the check-in queue view.
func (p *Patient) InQueue() bool {
	return p.Status == PatientWaiting || p.Status == PatientCheckedIn
}

// PatientFilters narrows a gateway list request. Zero values mean "no filter".
type PatientFilters struct {
	Status string
	Doctor string
	Search string
}

// PatientPatch carries the updatable patient fields. Nil pointers are left
// unchanged by the gateway.
type PatientPatch struct {
	FirstName      *string           `json:"first_name,omitempty"`
	LastName       *string           `json:"last_name,omitempty"`
	DateOfBirth    *string           `json:"date_of_birth,omitempty"`
	Age            *int              `json:"age,omitempty"`
	Sex            *string           `json:"sex,omitempty"`
	GenderIdentity *string           `json:"gender_identity,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Email          *string           `json:"email,omitempty"`
	Address        *string           `json:"address,omitempty"`
	AssignedDoctor *string           `json:"assigned_doctor,omitempty"`
	FollowUpDate   *string           `json:"follow_up_date,omitempty"`
	MedicalNotes   *string           `json:"medical_notes,omitempty"`
	Contact        *EmergencyContact `json:"emergency_contact,omitempty"`
}

// Stats is the dashboard aggregate for today's reception activity.
type Stats struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checked_in"`
	Waiting   int `json:"waiting"`
	Completed int `json:"completed"`
	NewToday  int `json:"new_today"`
}

// Registration is the result of creating a patient: the gateway performs the
// billing cascade server-side and returns both entities in one response.
type Registration struct {
	Patient Patient  `json:"patient"`
	Invoice *Invoice `json:"invoice,omitempty"`
}

// Doctors is the fallback doctor list used when the reference endpoint is
// unavailable.
var Doctors = []string{
	"Dr. Policarpio",
	"Dr. Dalusong",
	"Dr. Rotao",
	"Dr. Lorino",
	"Dr. Angeles",
	"Dr. David",
}
