package appointments

// Appointment statuses
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment types
const (
	TypeConsultation = "consultation"
	TypeFollowUp     = "follow-up"
	TypeEmergency    = "emergency"
	TypeRoutine      = "routine"
)

// Index names on the appointments table.
const (
	PatientEmailIndex = "PatientEmailIndex"
	DoctorDateIndex   = "DoctorDateIndex"
)

// Appointment is the public shape returned by the API.
type Appointment struct {
	ID           string `json:"id" validate:"required"`
	PatientName  string `json:"patientName" validate:"required"`
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	DoctorName   string `json:"doctorName" validate:"required"`
	Date         string `json:"date" validate:"required,rfc3339"`
	Duration     int    `json:"duration" validate:"gt=0"` // minutes
	Type         string `json:"type" validate:"oneof=consultation follow-up emergency routine"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status" validate:"oneof=scheduled confirmed cancelled completed"`
}

// Record is the item stored in the appointments DynamoDB table.
type Record struct {
	PK           string `dynamodbav:"PK" validate:"required"`
	SK           string `dynamodbav:"SK" validate:"required"`
	GSI1PK       string `dynamodbav:"GSI1PK,omitempty"` // patient email
	GSI1SK       string `dynamodbav:"GSI1SK,omitempty"`
	GSI2PK       string `dynamodbav:"GSI2PK,omitempty"` // doctor name
	GSI2SK       string `dynamodbav:"GSI2SK,omitempty"` // date
	GSI3PK       string `dynamodbav:"GSI3PK,omitempty"` // status
	GSI3SK       string `dynamodbav:"GSI3SK,omitempty"`
	ID           string `dynamodbav:"id" validate:"required"`
	PatientName  string `dynamodbav:"patientName" validate:"required"`
	PatientEmail string `dynamodbav:"patientEmail" validate:"required"`
	DoctorName   string `dynamodbav:"doctorName" validate:"required"`
	Date         string `dynamodbav:"date" validate:"required,rfc3339"`
	Duration     int    `dynamodbav:"duration"`
	Type         string `dynamodbav:"type" validate:"oneof=consultation follow-up emergency routine"`
	Notes        string `dynamodbav:"notes,omitempty"`
	Status       string `dynamodbav:"status" validate:"oneof=scheduled confirmed cancelled completed"`
}

// Filter holds the optional GET /appointments query parameters.
type Filter struct {
	Date         string
	PatientEmail string
	Doctor       string
}
