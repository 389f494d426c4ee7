package constants

// Role sistem yang dibuat saat school baru dibuat. Tidak bisa di-rename / dihapus.
const (
	RoleAdmin        = "admin"
	RoleTeacher      = "teacher"
	RoleAccountant   = "accountant"
	RoleLibrarian    = "librarian"
	RoleReceptionist = "receptionist"
)

var SystemRoles = []SystemRole{
	{Slug: RoleAdmin, Name: "Admin"},
	{Slug: RoleTeacher, Name: "Teacher", Permissions: []string{
		PermAcademicsView, PermStudentsView, PermAttendanceManage, PermExamsManage, PermHomeworkManage,
	}},
	{Slug: RoleAccountant, Name: "Accountant", Permissions: []string{
		PermStudentsView, PermFeesView, PermFeesManage, PermFeesCollect,
	}},
	{Slug: RoleLibrarian, Name: "Librarian", Permissions: []string{
		PermStudentsView, PermLibraryManage,
	}},
	{Slug: RoleReceptionist, Name: "Receptionist", Permissions: []string{
		PermStudentsView, PermFrontOfficeManage,
	}},
}

type SystemRole struct {
	Slug        string
	Name        string
	Permissions []string // admin tidak butuh daftar, selalu lolos
}
