package config

import (
	"fmt"
	"strings"
)

// DefaultTeacher is used when the configuration does not name a teacher.
var DefaultTeacher = RosterEntry{Name: "교사", Code: "5555"}

// DefaultStudents is the class list used when the configuration has none.
var DefaultStudents = []RosterEntry{
	{Name: "김대수", Code: "1024"},
	{Name: "김주한", Code: "0623"},
	{Name: "김차영", Code: "0630"},
	{Name: "김태린", Code: "0609"},
	{Name: "김혜지", Code: "1029"},
	{Name: "안준희", Code: "1207"},
	{Name: "인선우", Code: "1010"},
	{Name: "정군", Code: "0420"},
	{Name: "정유이", Code: "0609"},
	{Name: "최지음", Code: "0820"},
}

func validateRoster(teacher RosterEntry, students []RosterEntry) error {
	if err := validateEntry(teacher); err != nil {
		return fmt.Errorf("roster.teacher: %w", err)
	}
	for i, s := range students {
		if err := validateEntry(s); err != nil {
			return fmt.Errorf("roster.students[%d]: %w", i, err)
		}
	}
	return nil
}

func validateEntry(e RosterEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if e.Code == "" && e.CodeHash == "" {
		return fmt.Errorf("%s: code or code_hash is required", e.Name)
	}
	if e.Code != "" && !isLoginCode(e.Code) {
		return fmt.Errorf("%s: code must be 4 digits", e.Name)
	}
	return nil
}

func isLoginCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
