package model

import "encoding/json"

// Address holds the optional postal fields shared by users, sessions and orders.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// User is one entry of the persisted users collection. Phone is the unique key.
type User struct {
	Phone       string `json:"phone"`
	SecretHash  string `json:"secretHash,omitempty"`
	LegacyPIN   string `json:"pin,omitempty"` // plaintext PIN written by the earliest app revision; removed on next login
	DisplayName string `json:"displayName,omitempty"`
	Address
}

// UnmarshalJSON also accepts the profile keys of older records.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		legacyProfile
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	aux.legacyProfile.fill(&u.DisplayName, &u.Address)
	return nil
}

// legacyProfile holds the keys the profile page wrote before displayName and
// zip. They are read, never written.
type legacyProfile struct {
	Name    string `json:"name,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

func (l legacyProfile) fill(displayName *string, a *Address) {
	if *displayName == "" {
		*displayName = l.Name
	}
	if a.Zip == "" {
		a.Zip = l.ZipCode
	}
}

// ProfileUpdate carries the editable profile fields of the logged-in user.
type ProfileUpdate struct {
	DisplayName string
	Address     Address
}
