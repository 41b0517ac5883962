package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/models"
)

type rosterAccount struct {
	entry config.RosterEntry
	role  models.Role
}

// Directory answers login checks against the fixed roster. It is built once
// at startup and never mutated.
type Directory struct {
	accounts []rosterAccount
}

// NewDirectory builds a directory with the teacher first, then students in order.
func NewDirectory(teacher config.RosterEntry, students []config.RosterEntry) *Directory {
	accounts := make([]rosterAccount, 0, len(students)+1)
	accounts = append(accounts, rosterAccount{entry: teacher, role: models.RoleTeacher})
	for _, s := range students {
		accounts = append(accounts, rosterAccount{entry: s, role: models.RoleStudent})
	}
	return &Directory{accounts: accounts}
}

// VerifyLogin returns the first roster account whose name and code both match exactly.
func (d *Directory) VerifyLogin(name, code string) (models.Account, bool) {
	if name == "" || code == "" {
		return models.Account{}, false
	}
	for _, a := range d.accounts {
		if a.entry.Name != name {
			continue
		}
		if codeMatches(a.entry, code) {
			return models.Account{Name: a.entry.Name, Role: a.role}, true
		}
	}
	return models.Account{}, false
}

func codeMatches(e config.RosterEntry, code string) bool {
	if e.CodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(e.CodeHash), []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(e.Code), []byte(code)) == 1
}
