package entity

import "time"

// Course is a purchasable video course managed by admins.
type Course struct {
	ID          string
	Title       string
	Description string
	VideoURL    string
	Price       float64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enrollment links a student to a course they signed up for.
type Enrollment struct {
	ID        string
	UserID    string
	CourseID  string
	CreatedAt time.Time
}

// WishlistItem marks a course a user saved for later.
type WishlistItem struct {
	UserID    string
	CourseID  string
	CreatedAt time.Time
}
