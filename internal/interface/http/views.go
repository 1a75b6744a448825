package handlers

import (
	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
)

// userView is the public shape of a user. It has no password field at all,
// so a hash can never be serialized by accident.
type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func viewUser(u *entity.User) userView {
	return userView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
}

func viewUsers(us []*entity.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, viewUser(u))
	}
	return out
}

type courseView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    string  `json:"videoUrl"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

func viewCourse(c *entity.Course) courseView {
	return courseView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		VideoURL:    c.VideoURL,
		Price:       c.Price,
		ImageURL:    c.ImageURL,
	}
}

func viewCourses(cs []*entity.Course) []courseView {
	out := make([]courseView, 0, len(cs))
	for _, c := range cs {
		out = append(out, viewCourse(c))
	}
	return out
}
