package appointments

import "github.com/imrishuroy/go-orders-appointments-api/internal/ddb"

// FromRecord copies the public fields of a stored record.
func FromRecord(r Record) Appointment {
	return Appointment{
		ID:           r.ID,
		PatientName:  r.PatientName,
		PatientEmail: r.PatientEmail,
		DoctorName:   r.DoctorName,
		Date:         r.Date,
		Duration:     r.Duration,
		Type:         r.Type,
		Notes:        r.Notes,
		Status:       r.Status,
	}
}

// NewRecord builds the storage record for a, deriving keys and projections from its fields.
func NewRecord(a Appointment) Record {
	key := ddb.EntityKey(ddb.EntityAppointment, a.ID)
	return Record{
		PK:           key.PK,
		SK:           key.SK,
		GSI1PK:       a.PatientEmail,
		GSI1SK:       a.PatientEmail,
		GSI2PK:       a.DoctorName,
		GSI2SK:       a.Date,
		GSI3PK:       a.Status,
		GSI3SK:       a.Status,
		ID:           a.ID,
		PatientName:  a.PatientName,
		PatientEmail: a.PatientEmail,
		DoctorName:   a.DoctorName,
		Date:         a.Date,
		Duration:     a.Duration,
		Type:         a.Type,
		Notes:        a.Notes,
		Status:       a.Status,
	}
}
