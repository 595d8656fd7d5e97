package models

const (
	ActorRolePatient = "patient"
	ActorRoleAdmin   = "admin"
	ActorRoleSystem  = "system"
)

// Actor is the already authenticated caller. The stage engine trusts
// IsAdmin as given.
type Actor struct {
	Subject string
	Email   string
	Role    string
	IsAdmin bool
}

func (a Actor) IsAnonymous() bool {
	return a.Subject == "" && a.Email == ""
}

func AnonymousPatient() Actor {
	return Actor{Role: ActorRolePatient}
}

func AdminActor(subject, email string) Actor {
	return Actor{Subject: subject, Email: email, Role: ActorRoleAdmin, IsAdmin: true}
}

func SystemActor(subject string) Actor {
	return Actor{Subject: subject, Role: ActorRoleSystem}
}

func (a Actor) Label() string {
	switch {
	case a.Email != "":
		return a.Email
	case a.Subject != "":
		return a.Subject
	default:
		return a.Role
	}
}
