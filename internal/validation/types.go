package validation

// OrdersQuery is the query string accepted by GET /orders.
type OrdersQuery struct {
	CustomerEmail string `form:"customerEmail" validate:"omitempty,email"`
	Status        string `form:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

// AppointmentsQuery is the query string accepted by GET /appointments.
type AppointmentsQuery struct {
	Date         string `form:"date" validate:"omitempty,dayfilter"`
	PatientEmail string `form:"patientEmail" validate:"omitempty,email"`
	Doctor       string `form:"doctor" validate:"omitempty,max=128"`
}
