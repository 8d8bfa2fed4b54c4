package models

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID         string            `bson:"_id,omitempty" json:"id"`
	UserID     string            `bson:"user_id" json:"user_id" schema:"required"`
	DoctorName string            `bson:"doctor_name" json:"doctor_name" schema:"required"`
	Date       DateTime          `bson:"date" json:"date" schema:"required"`
	Status     AppointmentStatus `bson:"status" json:"status" validate:"oneof=requested confirmed completed cancelled"`
}

func NewAppointment() *Appointment {
	return &Appointment{Status: AppointmentRequested}
}
