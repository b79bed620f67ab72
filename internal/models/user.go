package models

// User is provisioned by the external auth service. This system reads the
// profile and lets the owner change their risk appetite.
type User struct {
	Base
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	RiskAppetite RiskLevel    `gorm:"size:16;not null;default:moderate" json:"risk_appetite"`
	Investments  []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
