package models

// User roles.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleTutor    = "tutor"
)

// Verification statuses. Transitions are one-shot: pending -> approved or
// pending -> rejected, never reversed.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Booking statuses. Forward-only: pending -> accepted -> completed, or
// pending/accepted -> cancelled. completed and cancelled are terminal.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// AI decision log kinds.
const (
	DecisionIdentityVerification = "identity_verification"
	DecisionTutorEvaluation      = "tutor_evaluation"
)

// HomeServiceTypes is the closed vocabulary of worker service types.
var HomeServiceTypes = []string{
	"cleaning", "painting", "gardening", "electrician", "plumber",
	"appliance_repair", "carpentry",
}

// TutorSubjects is the closed vocabulary of tutor subjects.
var TutorSubjects = []string{
	"mathematics", "science", "coding", "language", "music",
	"competitive_exam_training",
}

// IsHomeServiceType reports whether s is a known worker service type.
func IsHomeServiceType(s string) bool {
	for _, t := range HomeServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}

// IsTutorSubject reports whether s is a known tutor subject.
func IsTutorSubject(s string) bool {
	for _, t := range TutorSubjects {
		if t == s {
			return true
		}
	}
	return false
}

// IsValidRole reports whether r is a known user role.
func IsValidRole(r string) bool {
	return r == RoleCustomer || r == RoleWorker || r == RoleTutor
}
