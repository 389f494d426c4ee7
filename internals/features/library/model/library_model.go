package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookModel: 0 ≤ available ≤ quantity, dijaga oleh update kondisional.
type BookModel struct {
	BookID        uuid.UUID `gorm:"column:book_id;type:uuid;primaryKey" json:"id"`
	BookSchoolID  uuid.UUID `gorm:"column:book_school_id;type:uuid;not null;index" json:"schoolId"`
	BookTitle     string    `gorm:"column:book_title;size:200;not null" json:"title"`
	BookAuthor    *string   `gorm:"column:book_author;size:160" json:"author"`
	BookISBN      *string   `gorm:"column:book_isbn;size:32" json:"isbn"`
	BookPublisher *string   `gorm:"column:book_publisher;size:160" json:"publisher"`
	BookRackNo    *string   `gorm:"column:book_rack_no;size:40" json:"rackNo"`
	BookQuantity  int       `gorm:"column:book_quantity;not null" json:"quantity"`
	BookAvailable int       `gorm:"column:book_available;not null" json:"available"`
	BookCreatedAt time.Time `gorm:"column:book_created_at;not null;autoCreateTime" json:"createdAt"`
	BookUpdatedAt time.Time `gorm:"column:book_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (BookModel) TableName() string    { return "books" }
func (BookModel) TenantColumn() string { return "book_school_id" }
func (BookModel) KeyColumn() string    { return "book_id" }
func (BookModel) Label() string        { return "Book" }

func (m *BookModel) SetSchoolID(id uuid.UUID) { m.BookSchoolID = id }

func (m *BookModel) BeforeCreate(*gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}

const (
	MemberStudent = "student"
	MemberStaff   = "staff"
)

type LibraryMemberModel struct {
	LibraryMemberID        uuid.UUID  `gorm:"column:library_member_id;type:uuid;primaryKey" json:"id"`
	LibraryMemberSchoolID  uuid.UUID  `gorm:"column:library_member_school_id;type:uuid;not null;uniqueIndex:uq_library_members_card,priority:1" json:"schoolId"`
	LibraryMemberType      string     `gorm:"column:library_member_type;size:10;not null" json:"memberType"`
	LibraryMemberStudentID *uuid.UUID `gorm:"column:library_member_student_id;type:uuid" json:"studentId"`
	LibraryMemberStaffID   *uuid.UUID `gorm:"column:library_member_staff_id;type:uuid" json:"staffId"`
	LibraryMemberCardNo    string     `gorm:"column:library_member_card_no;size:40;not null;uniqueIndex:uq_library_members_card,priority:2" json:"cardNo"`
	LibraryMemberCreatedAt time.Time  `gorm:"column:library_member_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (LibraryMemberModel) TableName() string    { return "library_members" }
func (LibraryMemberModel) TenantColumn() string { return "library_member_school_id" }
func (LibraryMemberModel) KeyColumn() string    { return "library_member_id" }
func (LibraryMemberModel) Label() string        { return "Library member" }

func (m *LibraryMemberModel) SetSchoolID(id uuid.UUID) { m.LibraryMemberSchoolID = id }

func (m *LibraryMemberModel) BeforeCreate(*gorm.DB) error {
	if m.LibraryMemberID == uuid.Nil {
		m.LibraryMemberID = uuid.New()
	}
	return nil
}

// BookIssueModel: issued → returned, sekali saja.
type BookIssueModel struct {
	BookIssueID              uuid.UUID  `gorm:"column:book_issue_id;type:uuid;primaryKey" json:"id"`
	BookIssueSchoolID        uuid.UUID  `gorm:"column:book_issue_school_id;type:uuid;not null;index" json:"schoolId"`
	BookIssueBookID          uuid.UUID  `gorm:"column:book_issue_book_id;type:uuid;not null;index" json:"bookId"`
	BookIssueLibraryMemberID uuid.UUID  `gorm:"column:book_issue_library_member_id;type:uuid;not null;index" json:"memberId"`
	BookIssueIssueDate       time.Time  `gorm:"column:book_issue_issue_date;type:date;not null" json:"issueDate"`
	BookIssueDueDate         *time.Time `gorm:"column:book_issue_due_date;type:date" json:"dueDate"`
	BookIssueReturnDate      *time.Time `gorm:"column:book_issue_return_date;type:date" json:"returnDate"`
	BookIssueIsReturned      bool       `gorm:"column:book_issue_is_returned;not null;default:false" json:"isReturned"`
	BookIssueIssuedBy        *uuid.UUID `gorm:"column:book_issue_issued_by;type:uuid" json:"issuedBy"`
	BookIssueCreatedAt       time.Time  `gorm:"column:book_issue_created_at;not null;autoCreateTime" json:"createdAt"`
	BookIssueUpdatedAt       time.Time  `gorm:"column:book_issue_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (BookIssueModel) TableName() string    { return "book_issues" }
func (BookIssueModel) TenantColumn() string { return "book_issue_school_id" }
func (BookIssueModel) KeyColumn() string    { return "book_issue_id" }
func (BookIssueModel) Label() string        { return "Book issue" }

func (m *BookIssueModel) SetSchoolID(id uuid.UUID) { m.BookIssueSchoolID = id }

func (m *BookIssueModel) BeforeCreate(*gorm.DB) error {
	if m.BookIssueID == uuid.Nil {
		m.BookIssueID = uuid.New()
	}
	return nil
}
