// Package hours implements hour registration on top of the shift engine:
// validation of new and edited entries, the payload sent to the CORA API,
// cache synchronisation and the attendance calendar.
package hours

import (
	"strings"

	"github.com/Tiliavir/cora-hours/internal/shift"
)

// Default daily targets for the attendance calendar.
const (
	DefaultDailyTarget = 9.0
	ReducedDailyTarget = 8.0
)

// Session is the signed-in consultant. It is built once at start-up and
// passed to everything that needs to know who is registering hours.
type Session struct {
	ConsultantID int64
	Login        string
	Name         string
	Role         string
	Shift        string // HH:MM-HH:MM
	Modules      []string
	DailyTarget  float64
}

// Owner returns the session identity in the form entries are compared with.
func (s Session) Owner() shift.Owner {
	return shift.NewOwner(s.ConsultantID, s.Login, s.Name)
}

// IsAdmin reports whether the role may act on every consultant's entries.
func (s Session) IsAdmin() bool {
	switch strings.ToUpper(strings.TrimSpace(s.Role)) {
	case "ADMIN", "ADMIN_BASIS", "ADMIN_FUNCIONAL":
		return true
	}
	return false
}

// Target returns the daily target, falling back to DefaultDailyTarget.
func (s Session) Target() float64 {
	if s.DailyTarget > 0 {
		return s.DailyTarget
	}
	return DefaultDailyTarget
}

// TargetFor picks the daily target of a login: reduced for the listed users,
// the default otherwise. Logins compare case-insensitively.
func TargetFor(login string, reducedUsers []string, target, reduced float64) float64 {
	if target <= 0 {
		target = DefaultDailyTarget
	}
	if reduced <= 0 {
		reduced = ReducedDailyTarget
	}
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return target
	}
	for _, u := range reducedUsers {
		if strings.ToLower(strings.TrimSpace(u)) == login {
			return reduced
		}
	}
	return target
}
