package models

import "time"

// Task is a unit of work tracked on the task list and dashboard.
// Completion is a plain boolean; there are no intermediate statuses.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewTask carries the caller supplied fields for task creation.
type NewTask struct {
	Title       string
	Description *string
	Deadline    *time.Time
	CreatedAt   *time.Time
}

// TeamMember describes a person that can be attached to projects.
type TeamMember struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	Projects       []string  `json:"projects"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TeamMemberPatch lists the fields of a member that should change.
// Nil fields are left untouched.
type TeamMemberPatch struct {
	Name           *string
	Role           *string
	Email          *string
	ProfilePicture *string
	Projects       *[]string
}

// Project groups work and team members together.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectPatch lists the fields of a project that should change.
type ProjectPatch struct {
	Title       *string
	Description *string
	OwnerID     *string
	Members     *[]string
}
