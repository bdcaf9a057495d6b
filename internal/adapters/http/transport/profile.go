package transport

import (
	"github.com/pkg/errors"
)

// Envelope names the fields of the JSON wrapper around every response.
type Envelope struct {
	CodeField    string
	MessageField string
	DataField    string
	SuccessCode  string
}

// Profile is the path prefix and envelope of one backend deployment.
type Profile struct {
	Name       string
	PathPrefix string
	Envelope   Envelope
}

var (
	// ProfileDefault is the production backend: no prefix, {code,msg,data}.
	ProfileDefault = Profile{
		Name:       "default",
		PathPrefix: "",
		Envelope:   Envelope{CodeField: "code", MessageField: "msg", DataField: "data", SuccessCode: "0000"},
	}

	// ProfileDemo is the demo backend behind the /api proxy: {status,message,result}.
	ProfileDemo = Profile{
		Name:       "demo",
		PathPrefix: "/api",
		Envelope:   Envelope{CodeField: "status", MessageField: "message", DataField: "result", SuccessCode: "200"},
	}
)

// ProfileByName returns the built-in profile called name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case ProfileDefault.Name:
		return ProfileDefault, nil
	case ProfileDemo.Name:
		return ProfileDemo, nil
	default:
		return Profile{}, errors.Errorf("unknown profile %q", name)
	}
}
