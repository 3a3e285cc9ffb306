// Package team holds the static directory of team members. The roster is
// fixed configuration data loaded at process start; there are no mutation
// operations and absence is reported as (Member{}, false), never an error.
package team

import "strings"

type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

type Directory struct {
	members []Member
}

func NewDirectory(members []Member) *Directory {
	copied := make([]Member, len(members))
	copy(copied, members)
	return &Directory{members: copied}
}

// DefaultDirectory returns the built-in Nyrix roster.
func DefaultDirectory() *Directory {
	return NewDirectory([]Member{
		{ID: "huzaifa", Name: "Huzaifa", Email: "huzaifa@nyrix.co", Initials: "H"},
		{ID: "sarim", Name: "Sarim", Email: "sarim@nyrix.co", Initials: "S"},
		{ID: "talha", Name: "Talha", Email: "talhaone1234@gmail.com", Initials: "T"},
		{ID: "hashir", Name: "Hashir", Email: "muhammadhashirsiddiqui2@gmail.com", Initials: "H"},
	})
}

// Members returns the roster in directory order.
func (d *Directory) Members() []Member {
	copied := make([]Member, len(d.members))
	copy(copied, d.members)
	return copied
}

func (d *Directory) FindByEmail(email string) (Member, bool) {
	for _, m := range d.members {
		if m.Email == email {
			return m, true
		}
	}
	return Member{}, false
}

func (d *Directory) FindByID(id string) (Member, bool) {
	for _, m := range d.members {
		if strings.EqualFold(m.ID, id) {
			return m, true
		}
	}
	return Member{}, false
}

func (d *Directory) FindByName(name string) (Member, bool) {
	for _, m := range d.members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Member{}, false
}

// Initials derives display initials from a full name, at most two letters.
func Initials(name string) string {
	if name == "" {
		return "?"
	}
	var initials []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			initials = append(initials, r)
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return strings.ToUpper(string(initials))
}
