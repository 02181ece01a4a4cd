package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a credit application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusDenied    ApplicationStatus = "denied"
)

// Borrower holds the identity, residence, employment and banking details of
// one applicant. Embedded twice on CustomerApplication (primary + co-borrower).
type Borrower struct {
	FirstName       string `gorm:"size:100" json:"first_name"`
	LastName        string `gorm:"size:100" json:"last_name"`
	Email           string `gorm:"size:200" json:"email"`
	Phone           string `gorm:"size:30" json:"phone"`
	DateOfBirth     string `gorm:"size:10" json:"date_of_birth"`
	SSN             string `gorm:"column:ssn;size:11" json:"ssn"`
	Street          string `gorm:"size:200" json:"street"`
	City            string `gorm:"size:100" json:"city"`
	State           string `gorm:"size:2" json:"state"`
	Zip             string `gorm:"size:10" json:"zip"`
	LivingSituation string `gorm:"size:50" json:"living_situation"`
	MonthlyHousing  int64  `json:"monthly_housing"`
	Employer        string `gorm:"size:200" json:"employer"`
	JobTitle        string `gorm:"size:100" json:"job_title"`
	EmploymentYears int    `json:"employment_years"`
	MonthlyIncome   int64  `json:"monthly_income"`
	BankName        string `gorm:"size:100" json:"bank_name"`
	AccountType     string `gorm:"size:30" json:"account_type"`
}

// CustomerApplication is a credit application. Immutable after submission
// except for the admin review fields.
type CustomerApplication struct {
	ID     uuid.UUID         `gorm:"primaryKey;type:uuid" json:"id"`
	Status ApplicationStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`

	Primary     Borrower  `gorm:"embedded;embeddedPrefix:primary_" json:"primary"`
	CoBorrower  *Borrower `gorm:"embedded;embeddedPrefix:co_" json:"co_borrower,omitempty"`
	HasCoSigner bool      `gorm:"not null;default:false" json:"has_co_signer"`

	ConsentToSMS      bool   `gorm:"column:consent_to_sms;not null;default:false" json:"consent_to_sms"`
	InterestedVehicle *int64 `gorm:"index" json:"interested_vehicle,omitempty"`

	SubmittedAt time.Time  `gorm:"default:now()" json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *string    `gorm:"size:100" json:"reviewed_by,omitempty"`
	AdminNotes  *string    `json:"admin_notes,omitempty"`

	// Relations
	Vehicle *Vehicle `gorm:"foreignKey:InterestedVehicle" json:"vehicle,omitempty"`
}

// TableName specifies the table name for GORM
func (CustomerApplication) TableName() string {
	return "customer_applications"
}
