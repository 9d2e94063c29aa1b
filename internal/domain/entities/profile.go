package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// Gender mirrors the stored enum
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderOther  Gender = 3
)

// IsValid reports whether g is a known gender
func (g Gender) IsValid() bool {
	return g >= GenderMale && g <= GenderOther
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Ptr returns nil for the zero date
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// AdminProfile is owned 1:1 by an admin user
type AdminProfile struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"users_id"`
	DOB          null.Time   `json:"dob"`
	Gender       Gender      `json:"gender"`
	LastLogin    null.Time   `json:"last_login"`
	ProfileImage null.String `json:"profile_image"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// SalesPersonProfile is owned 1:1 by a sales person user
type SalesPersonProfile struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"users_id"`
	DOB          null.Time   `json:"dob"`
	Gender       Gender      `json:"gender"`
	Address1     string      `json:"address1"`
	Address2     string      `json:"address2"`
	City         string      `json:"city"`
	District     string      `json:"district"`
	State        string      `json:"state"`
	Country      string      `json:"country"`
	PostalCode   string      `json:"postal_code"`
	ProfileImage null.String `json:"profile_image"`
	Designation  string      `json:"designation"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateSalesPersonProfileInput creates the profile of an existing sales person
type CreateSalesPersonProfileInput struct {
	UserID      int64  `json:"users_id"`
	DOB         Date   `json:"dob"`
	Gender      Gender `json:"gender"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	District    string `json:"district"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	Designation string `json:"designation"`
}

// SalesPersonPatch names every updatable field. FullName goes to the user
// record, everything else to the profile.
type SalesPersonPatch struct {
	FullName    *string `json:"full_name"`
	DOB         *Date   `json:"dob"`
	Gender      *Gender `json:"gender"`
	Address1    *string `json:"address1"`
	Address2    *string `json:"address2"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	PostalCode  *string `json:"postal_code"`
	Designation *string `json:"designation"`
}

// ProfileFields returns the column updates for the profile record
func (p SalesPersonPatch) ProfileFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.DOB != nil {
		fields["dob"] = p.DOB.Ptr()
	}
	if p.Gender != nil {
		fields["gender"] = int(*p.Gender)
	}
	setString(fields, "address1", p.Address1)
	setString(fields, "address2", p.Address2)
	setString(fields, "city", p.City)
	setString(fields, "district", p.District)
	setString(fields, "state", p.State)
	setString(fields, "country", p.Country)
	setString(fields, "postal_code", p.PostalCode)
	setString(fields, "designation", p.Designation)
	return fields
}

// IsEmpty reports whether the patch changes nothing
func (p SalesPersonPatch) IsEmpty() bool {
	return p.FullName == nil && len(p.ProfileFields()) == 0
}

// AdminProfilePatch names every updatable admin field
type AdminProfilePatch struct {
	FullName *string `json:"full_name"`
	DOB      *Date   `json:"dob"`
	Gender   *Gender `json:"gender"`
}

// ProfileFields returns the column updates for the profile record
func (p AdminProfilePatch) ProfileFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.DOB != nil {
		fields["dob"] = p.DOB.Ptr()
	}
	if p.Gender != nil {
		fields["gender"] = int(*p.Gender)
	}
	return fields
}

// IsEmpty reports whether the patch changes nothing
func (p AdminProfilePatch) IsEmpty() bool {
	return p.FullName == nil && len(p.ProfileFields()) == 0
}

func setString(fields map[string]interface{}, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

// SalesPersonView joins a sales person profile with its user
type SalesPersonView struct {
	SalesPersonProfile
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	ReferralCode string `json:"referral_code"`
	Blocked      bool   `json:"blocked"`
}

// AdminView joins an admin profile with its user
type AdminView struct {
	AdminProfile
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	ReferralCode string `json:"referral_code"`
	Blocked      bool   `json:"blocked"`
}

// ListFilter restricts profile listings
type ListFilter struct {
	Blocked *bool
	Skip    int
	Limit   int
}
