package templates

import "time"

// RegistrationData feeds the registration_success templates.
type RegistrationData struct {
	AppName        string
	Username       string
	FullName       string
	Email          string
	CreatedAt      time.Time
	CreatedAtText  string
	ActivationLink string
}

func NewRegistrationData(appName, username, fullName, email string, createdAt time.Time, activationLink string) RegistrationData {
	utc := createdAt.UTC()
	return RegistrationData{
		AppName:        appName,
		Username:       username,
		FullName:       fullName,
		Email:          email,
		CreatedAt:      utc,
		CreatedAtText:  utc.Format("02 January 2006, 15:04 MST"),
		ActivationLink: activationLink,
	}
}
