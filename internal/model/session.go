package model

import "encoding/json"

// Session is the device-local record of the logged-in user.
// It is a projection of User without any credential material.
type Session struct {
	Phone       string `json:"phone"`
	DisplayName string `json:"displayName,omitempty"`
	Address
}

// NewSession projects a user onto a session.
func NewSession(u User) Session {
	return Session{
		Phone:       u.Phone,
		DisplayName: u.DisplayName,
		Address:     u.Address,
	}
}

// UnmarshalJSON also accepts the profile keys of older records.
func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var aux struct {
		plain
		legacyProfile
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Session(aux.plain)
	aux.legacyProfile.fill(&s.DisplayName, &s.Address)
	return nil
}
