package model

import "time"

// Book is a catalogue entry with copy counts.
type Book struct {
	ID              int       `json:"id"`
	BranchID        int       `json:"branch_id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookRequest is the payload for creating or updating a book.
type BookRequest struct {
	ISBN        string `json:"isbn" binding:"omitempty,max=20"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Author      string `json:"author" binding:"omitempty,max=150"`
	TotalCopies int    `json:"total_copies" binding:"min=0,max=10000"`
}

// BookIssue is one circulation record.
type BookIssue struct {
	ID          int     `json:"id"`
	BookID      int     `json:"book_id"`
	BookTitle   string  `json:"book_title,omitempty"`
	StudentID   int     `json:"student_id"`
	StudentName string  `json:"student_name,omitempty"`
	IssuedOn    string  `json:"issued_on"`
	DueDate     string  `json:"due_date"`
	ReturnedOn  *string `json:"returned_on"`
	Fine        int64   `json:"fine"`
}

// IssueBookRequest is the payload for lending a book.
type IssueBookRequest struct {
	BookID    int    `json:"book_id" binding:"required,min=1"`
	StudentID int    `json:"student_id" binding:"required,min=1"`
	DueDate   string `json:"due_date" binding:"required,date"`
}

// IssueFilter narrows circulation listings.
type IssueFilter struct {
	StudentID int  `form:"student_id"`
	Open      bool `form:"open"`
}
