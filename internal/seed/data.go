package seed

import (
	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
)

// Orders returns the sample orders. Timestamps carry the -03:00 offset.
func Orders() []orders.Order {
	return []orders.Order{
		{
			ID:            "1",
			CustomerName:  "María González",
			CustomerEmail: "maria.gonzalez@email.com",
			Items: []orders.Item{
				{ID: "1", Name: "Laptop Dell Inspiron 15", Quantity: 1, Price: 899.99, Description: "Laptop de 15 pulgadas, Intel i5, 8GB RAM, 256GB SSD"},
				{ID: "2", Name: "Mouse inalámbrico Logitech", Quantity: 2, Price: 29.99, Description: "Mouse óptico inalámbrico con receptor USB"},
			},
			Total:             959.97,
			Status:            orders.StatusPending,
			CreatedAt:         "2025-07-15T10:30:00.000-03:00",
			UpdatedAt:         "2025-07-15T10:30:00.000-03:00",
			EstimatedDelivery: "2025-07-20T00:00:00.000-03:00",
		},
		{
			ID:            "2",
			CustomerName:  "Carlos Mendoza",
			CustomerEmail: "carlos.mendoza@email.com",
			Items: []orders.Item{
				{ID: "3", Name: `Monitor Samsung 24"`, Quantity: 1, Price: 199.99, Description: "Monitor LED Full HD 1920x1080, 60Hz"},
				{ID: "4", Name: "Teclado mecánico RGB", Quantity: 1, Price: 89.99, Description: "Teclado mecánico con switches Cherry MX Blue"},
			},
			Total:          289.98,
			Status:         orders.StatusProcessing,
			CreatedAt:      "2025-07-14T14:15:00.000-03:00",
			UpdatedAt:      "2025-07-16T09:45:00.000-03:00",
			TrackingNumber: "TRK789456123",
		},
		{
			ID:            "3",
			CustomerName:  "Ana Rodríguez",
			CustomerEmail: "ana.rodriguez@email.com",
			Items: []orders.Item{
				{ID: "5", Name: "iPhone 15 Pro", Quantity: 1, Price: 1199.99, Description: "iPhone 15 Pro 128GB, Titanio Natural"},
				{ID: "6", Name: "Carcasa protectora", Quantity: 1, Price: 39.99, Description: "Carcasa de silicona transparente para iPhone 15 Pro"},
			},
			Total:             1239.98,
			Status:            orders.StatusShipped,
			CreatedAt:         "2025-07-13T11:20:00.000-03:00",
			UpdatedAt:         "2025-07-17T16:30:00.000-03:00",
			TrackingNumber:    "TRK456789321",
			EstimatedDelivery: "2025-07-19T00:00:00.000-03:00",
		},
		{
			ID:            "4",
			CustomerName:  "Luis Fernández",
			CustomerEmail: "luis.fernandez@email.com",
			Items: []orders.Item{
				{ID: "7", Name: "Auriculares Sony WH-1000XM5", Quantity: 1, Price: 349.99, Description: "Auriculares inalámbricos con cancelación de ruido"},
				{ID: "8", Name: "Cable USB-C", Quantity: 3, Price: 12.99, Description: "Cable USB-C de alta velocidad 100W"},
			},
			Total:          388.96,
			Status:         orders.StatusDelivered,
			CreatedAt:      "2025-07-10T08:45:00.000-03:00",
			UpdatedAt:      "2025-07-12T14:20:00.000-03:00",
			TrackingNumber: "TRK123789456",
		},
		{
			ID:            "5",
			CustomerName:  "Carmen Silva",
			CustomerEmail: "carmen.silva@email.com",
			Items: []orders.Item{
				{ID: "9", Name: "Tablet Samsung Galaxy Tab S9", Quantity: 1, Price: 649.99, Description: "Tablet Android 11 pulgadas, 128GB"},
				{ID: "10", Name: "Funda con teclado", Quantity: 1, Price: 79.99, Description: "Funda protectora con teclado bluetooth"},
			},
			Total:     729.98,
			Status:    orders.StatusCancelled,
			CreatedAt: "2025-07-08T16:30:00.000-03:00",
			UpdatedAt: "2025-07-09T10:15:00.000-03:00",
		},
		{
			ID:            "6",
			CustomerName:  "Roberto Vargas",
			CustomerEmail: "roberto.vargas@email.com",
			Items: []orders.Item{
				{ID: "11", Name: "Smartwatch Apple Watch Series 9", Quantity: 1, Price: 399.99, Description: "Apple Watch Series 9 GPS 41mm"},
				{ID: "12", Name: "Banda deportiva", Quantity: 2, Price: 49.99, Description: "Banda de silicona deportiva para Apple Watch"},
			},
			Total:             499.97,
			Status:            orders.StatusPending,
			CreatedAt:         "2025-07-18T12:00:00.000-03:00",
			UpdatedAt:         "2025-07-18T12:00:00.000-03:00",
			EstimatedDelivery: "2025-07-23T00:00:00.000-03:00",
		},
		{
			ID:            "7",
			CustomerName:  "Elena Martínez",
			CustomerEmail: "elena.martinez@email.com",
			Items: []orders.Item{
				{ID: "13", Name: "Cámara Canon EOS R7", Quantity: 1, Price: 1499.99, Description: "Cámara mirrorless APS-C, 33MP, 4K video"},
				{ID: "14", Name: "Lente 24-70mm f/2.8", Quantity: 1, Price: 899.99, Description: "Lente zoom profesional RF 24-70mm"},
			},
			Total:          2399.98,
			Status:         orders.StatusProcessing,
			CreatedAt:      "2025-07-17T09:30:00.000-03:00",
			UpdatedAt:      "2025-07-19T15:45:00.000-03:00",
			TrackingNumber: "TRK987321654",
		},
	}
}

// Appointments returns the sample appointments.
func Appointments() []appointments.Appointment {
	return []appointments.Appointment{
		{ID: "1", PatientName: "María González", PatientEmail: "maria.gonzalez@email.com", DoctorName: "Dr. Carlos Rodríguez",
			Date: "2025-07-22T10:00:00.000-03:00", Duration: 30, Type: appointments.TypeConsultation,
			Notes: "Consulta de rutina - Control anual", Status: appointments.StatusScheduled},
		{ID: "2", PatientName: "Luis Fernández", PatientEmail: "luis.fernandez@email.com", DoctorName: "Dra. Ana López",
			Date: "2025-07-24T14:30:00.000-03:00", Duration: 45, Type: appointments.TypeFollowUp,
			Notes: "Seguimiento post-cirugía de rodilla", Status: appointments.StatusConfirmed},
		{ID: "3", PatientName: "Carmen Silva", PatientEmail: "carmen.silva@email.com", DoctorName: "Dr. Roberto Mendoza",
			Date: "2025-07-25T09:00:00.000-03:00", Duration: 60, Type: appointments.TypeEmergency,
			Notes: "Dolor agudo en el pecho - Requiere evaluación inmediata", Status: appointments.StatusScheduled},
		{ID: "4", PatientName: "Carlos Mendoza", PatientEmail: "carlos.mendoza@email.com", DoctorName: "Dr. Carlos Rodríguez",
			Date: "2025-07-22T11:00:00.000-03:00", Duration: 30, Type: appointments.TypeRoutine,
			Notes: "Control de presión arterial y diabetes", Status: appointments.StatusConfirmed},
		{ID: "5", PatientName: "Elena Martínez", PatientEmail: "elena.martinez@email.com", DoctorName: "Dra. Ana López",
			Date: "2025-07-26T16:00:00.000-03:00", Duration: 45, Type: appointments.TypeConsultation,
			Notes: "Primera consulta - Evaluación general", Status: appointments.StatusScheduled},
		{ID: "6", PatientName: "Roberto Vargas", PatientEmail: "roberto.vargas@email.com", DoctorName: "Dr. Roberto Mendoza",
			Date: "2025-07-23T13:00:00.000-03:00", Duration: 30, Type: appointments.TypeFollowUp,
			Notes: "Seguimiento tratamiento de alergias", Status: appointments.StatusConfirmed},
		{ID: "7", PatientName: "Ana Rodríguez", PatientEmail: "ana.rodriguez@email.com", DoctorName: "Dra. Carmen Ruiz",
			Date: "2025-07-27T10:30:00.000-03:00", Duration: 60, Type: appointments.TypeConsultation,
			Notes: "Consulta ginecológica de rutina", Status: appointments.StatusScheduled},
		{ID: "8", PatientName: "Luis Pérez", PatientEmail: "luis.perez@email.com", DoctorName: "Dr. Carlos Rodríguez",
			Date: "2025-07-28T15:00:00.000-03:00", Duration: 45, Type: appointments.TypeEmergency,
			Notes: "Dolor de cabeza intenso y mareos", Status: appointments.StatusScheduled},
	}
}
