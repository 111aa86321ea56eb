package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every persisted statutory record.
type Entity interface {
	GetID() uuid.UUID
}

// Director is a company director register entry.
type Director struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title              string
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	Nationality        string
	Address            string
	AppointmentDate    time.Time
	ResignationDate    *time.Time
	DirectorType       string
	Occupation         string
	OtherDirectorships string
	Shareholding       string
	Status             string
	CompanyID          string `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (d *Director) GetID() uuid.UUID { return d.ID }

// Shareholder is a member register entry.
type Shareholder struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title              string
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	Nationality        string
	Address            string
	Email              string
	Phone              string
	OrdinaryShares     int
	PreferentialShares int
	DateAcquired       time.Time
	Status             string
	CompanyID          string `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s *Shareholder) GetID() uuid.UUID { return s.ID }

// BeneficialOwner is a beneficial-ownership register entry.
type BeneficialOwner struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title               string
	FirstName           string
	LastName            string
	DateOfBirth         time.Time
	Nationality         string
	Address             string
	Email               string
	Phone               string
	RegistrationDate    time.Time
	OwnershipPercentage float64
	NatureOfControl     string
	Status              string
	CompanyID           string `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (b *BeneficialOwner) GetID() uuid.UUID { return b.ID }

// Share is a share class definition.
type Share struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Class          string
	Type           string
	NominalValue   float64
	Currency       string
	VotingRights   bool
	DividendRights bool
	Transferable   bool
	TotalIssued    int
	Status         string
	Description    string
	CompanyID      string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Share) GetID() uuid.UUID { return s.ID }

// Charge is a registered charge over company property.
type Charge struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChargeID         string
	ChargeType       string
	Amount           float64
	Currency         string
	Chargor          string
	Chargee          string
	PropertyCharged  string
	DateCreated      time.Time
	RegistrationDate time.Time
	Description      string
	Status           string
	CompanyID        string `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c *Charge) GetID() uuid.UUID { return c.ID }

// Allotment is a share allotment register entry.
type Allotment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	AllotmentID    string
	AllotmentDate  time.Time
	ShareClass     string
	NumberOfShares int
	PricePerShare  float64
	Currency       string
	Allottee       string
	PaymentStatus  string
	Status         string
	CompanyID      string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a *Allotment) GetID() uuid.UUID { return a.ID }

// Meeting is a general or board meeting record.
type Meeting struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	MeetingType    string
	MeetingDate    time.Time
	Location       string
	QuorumRequired int
	QuorumPresent  int
	QuorumAchieved bool
	Status         string
	CompanyID      string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m *Meeting) GetID() uuid.UUID { return m.ID }

// BoardMinute is a board minute record.
type BoardMinute struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MeetingDate time.Time
	Chairperson string
	Location    string
	Status      string
	CompanyID   string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *BoardMinute) GetID() uuid.UUID { return b.ID }

// Activity is the audit entry paired with every created entity.
type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        string
	EntityType  EntityType
	EntityID    uuid.UUID `gorm:"index"`
	Description string
	User        string
	Time        time.Time
	CompanyID   string `gorm:"index"`
}
