package entity

import "time"

// Profile holds career details for a user. A user owns at most one profile.
// Experience and Education are ordered most-recent-first.
type Profile struct {
	ID         string       `json:"id"`
	CreatorID  string       `json:"creator"`
	Company    string       `json:"company"`
	Location   string       `json:"location"`
	Website    string       `json:"website"`
	Bio        string       `json:"bio"`
	Status     string       `json:"status"`
	Skills     []string     `json:"skills"`
	Social     Social       `json:"social"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Owner      *Owner       `json:"user,omitempty"`
	CreatedAt  time.Time    `json:"date"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

func (p *Profile) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.CreatorID == userID
}

// PrependExperience puts e in front of the experience list.
func (p *Profile) PrependExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// PrependEducation puts e in front of the education list.
func (p *Profile) PrependEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// TruncateExperienceAt drops the entry with the given id and every entry
// after it. It returns false when no entry has that id.
func (p *Profile) TruncateExperienceAt(id string) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = p.Experience[:i]
			return true
		}
	}
	return false
}

// TruncateEducationAt drops the entry with the given id and every entry
// after it. It returns false when no entry has that id.
func (p *Profile) TruncateEducationAt(id string) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = p.Education[:i]
			return true
		}
	}
	return false
}
