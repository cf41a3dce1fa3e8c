package company

import "time"

// DefaultCompanyID is the id of the protected fallback profile.
const DefaultCompanyID = "default"

// Company is a legal employer profile printed in the monthly report header.
type Company struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TaxID            string    `json:"taxId"`
	Address          string    `json:"address,omitempty"`
	RegistrationCode string    `json:"registrationCode,omitempty"` // CCC
	SealImage        string    `json:"sealImage,omitempty"`
	IsDefault        bool      `json:"isDefault,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// DefaultProfile is the employer used by reports when a worker has no
// company profile. Reports fall back to these exact values on purpose.
func DefaultProfile() Company {
	return Company{
		ID:               DefaultCompanyID,
		Name:             "ALBALUZ DESARROLLOS URBANOS, S.A.",
		TaxID:            "A98543432",
		Address:          "ALBALUZ DESARROLLOS URBANOS S.A",
		RegistrationCode: "02/1089856/19",
		IsDefault:        true,
	}
}

// WorkCenter returns the address, or the name when no address is set.
func (c Company) WorkCenter() string {
	if c.Address != "" {
		return c.Address
	}
	return c.Name
}
