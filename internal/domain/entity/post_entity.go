package entity

import "time"

// Post is a feed entry. Name and Image snapshot the author at creation time.
type Post struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creator"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"date"`
}

func (p *Post) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.CreatorID == userID
}

func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like prepends a like for userID. It returns false if userID already liked the post.
func (p *Post) Like(userID string) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return true
}

// Unlike removes userID's like. It returns false if there was none.
func (p *Post) Unlike(userID string) bool {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Post) PrependComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

func (p *Post) FindComment(id string) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// RemoveFirstCommentBy removes the first (most recent) comment written by
// userID, whichever comment that is.
func (p *Post) RemoveFirstCommentBy(userID string) bool {
	for i, c := range p.Comments {
		if c.UserID == userID {
			p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
