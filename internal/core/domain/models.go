package domain

import "time"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest is the body of POST /api/auth/register.
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email,max=50"`
	FirstName string `json:"firstName" binding:"required,min=3,max=20"`
	LastName  string `json:"lastName" binding:"required,min=3,max=20"`
	Password  string `json:"password" binding:"required,min=6,max=40"`
}

// JwtResponse is returned by a successful login.
type JwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        UserID `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionRequest is the body of session create and update calls.
// Participants are managed through the participate endpoints only.
type SessionRequest struct {
	Name        string    `json:"name" binding:"required,max=50"`
	Date        time.Time `json:"date" binding:"required"`
	TeacherID   TeacherID `json:"teacher_id" binding:"required"`
	Description string    `json:"description" binding:"required,max=2500"`
}

// TeacherRequest is the body of POST /api/teacher.
type TeacherRequest struct {
	FirstName string `json:"firstName" binding:"required,max=20"`
	LastName  string `json:"lastName" binding:"required,max=20"`
}
