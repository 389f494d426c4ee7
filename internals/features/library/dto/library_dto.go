package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/library/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateBookRequest struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Author    *string `json:"author" validate:"omitempty,max=160"`
	ISBN      *string `json:"isbn" validate:"omitempty,max=32"`
	Publisher *string `json:"publisher" validate:"omitempty,max=160"`
	RackNo    *string `json:"rackNo" validate:"omitempty,max=40"`
	Quantity  int     `json:"quantity" validate:"min=0,max=100000"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = helper.TrimPtr(r.Author)
	r.ISBN = helper.TrimPtr(r.ISBN)
	r.Publisher = helper.TrimPtr(r.Publisher)
	r.RackNo = helper.TrimPtr(r.RackNo)
}

func (r *CreateBookRequest) ToModel() *model.BookModel {
	return &model.BookModel{
		BookTitle:     r.Title,
		BookAuthor:    r.Author,
		BookISBN:      r.ISBN,
		BookPublisher: r.Publisher,
		BookRackNo:    r.RackNo,
		BookQuantity:  r.Quantity,
		BookAvailable: r.Quantity,
	}
}

type UpdateBookRequest struct {
	Title     helper.PatchField[string]  `json:"title"`
	Author    helper.PatchField[*string] `json:"author"`
	ISBN      helper.PatchField[*string] `json:"isbn"`
	Publisher helper.PatchField[*string] `json:"publisher"`
	RackNo    helper.PatchField[*string] `json:"rackNo"`
	Quantity  helper.PatchField[int]     `json:"quantity"`
}

func (r *UpdateBookRequest) Normalize() {
	helper.TrimPatch(&r.Title)
	helper.TrimPatchPtr(&r.Author)
	helper.TrimPatchPtr(&r.ISBN)
	helper.TrimPatchPtr(&r.Publisher)
	helper.TrimPatchPtr(&r.RackNo)
}

// Updates kolom biasa; perubahan quantity diproses terpisah sebagai delta.
func (r *UpdateBookRequest) Updates() (map[string]any, error) {
	if r.Title.Present && r.Title.Get() == "" {
		return nil, helper.Validation("title", "title is required")
	}
	if r.Quantity.Present && (r.Quantity.Value == nil || r.Quantity.Get() < 0) {
		return nil, helper.Validation("quantity", "quantity must be 0 or greater")
	}
	u := map[string]any{}
	r.Title.Apply(u, "book_title")
	r.Author.Apply(u, "book_author")
	r.ISBN.Apply(u, "book_isbn")
	r.Publisher.Apply(u, "book_publisher")
	r.RackNo.Apply(u, "book_rack_no")
	return u, nil
}

type CreateMemberRequest struct {
	MemberType string     `json:"memberType" validate:"required,oneof=student staff"`
	StudentID  *uuid.UUID `json:"studentId"`
	StaffID    *uuid.UUID `json:"staffId"`
	CardNo     string     `json:"cardNo" validate:"omitempty,max=40"`
}

func (r *CreateMemberRequest) Normalize() {
	r.MemberType = strings.ToLower(strings.TrimSpace(r.MemberType))
	r.CardNo = strings.ToUpper(strings.TrimSpace(r.CardNo))
}

// Validate: tepat satu referensi sesuai memberType.
func (r *CreateMemberRequest) Validate() error {
	switch r.MemberType {
	case model.MemberStudent:
		if r.StudentID == nil {
			return helper.Validation("studentId", "studentId is required")
		}
		r.StaffID = nil
	case model.MemberStaff:
		if r.StaffID == nil {
			return helper.Validation("staffId", "staffId is required")
		}
		r.StudentID = nil
	}
	return nil
}

type IssueBookRequest struct {
	BookID    uuid.UUID `json:"bookId" validate:"required"`
	MemberID  uuid.UUID `json:"memberId" validate:"required"`
	IssueDate *string   `json:"issueDate"`
	DueDate   *string   `json:"dueDate"`
}

type ReturnBookRequest struct {
	ReturnDate *string `json:"returnDate"`
}
