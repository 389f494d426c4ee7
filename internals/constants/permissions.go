package constants

// Katalog permission global (tabel permissions, tidak per tenant).
const (
	PermSchoolManage      = "school.manage"
	PermRolesManage       = "roles.manage"
	PermUsersManage       = "users.manage"
	PermAcademicsView     = "academics.view"
	PermAcademicsManage   = "academics.manage"
	PermStudentsView      = "students.view"
	PermStudentsManage    = "students.manage"
	PermStaffView         = "staff.view"
	PermStaffManage       = "staff.manage"
	PermAttendanceManage  = "attendance.manage"
	PermFeesView          = "fees.view"
	PermFeesManage        = "fees.manage"
	PermFeesCollect       = "fees.collect"
	PermExamsManage       = "exams.manage"
	PermLibraryManage     = "library.manage"
	PermTransportManage   = "transport.manage"
	PermFrontOfficeManage = "front_office.manage"
	PermHomeworkManage    = "homework.manage"
)

type PermissionDef struct {
	Slug   string
	Name   string
	Module string
}

var PermissionCatalog = []PermissionDef{
	{PermSchoolManage, "Manage school profile", "school"},
	{PermRolesManage, "Manage roles", "users"},
	{PermUsersManage, "Manage users", "users"},
	{PermAcademicsView, "View academics", "academics"},
	{PermAcademicsManage, "Manage sessions, classes, sections and subjects", "academics"},
	{PermStudentsView, "View students", "students"},
	{PermStudentsManage, "Manage students and enrollment", "students"},
	{PermStaffView, "View staff", "staff"},
	{PermStaffManage, "Manage staff and departments", "staff"},
	{PermAttendanceManage, "Record attendance", "attendance"},
	{PermFeesView, "View fees and dues", "fees"},
	{PermFeesManage, "Manage fee setup", "fees"},
	{PermFeesCollect, "Collect fee payments", "fees"},
	{PermExamsManage, "Manage exams and results", "exams"},
	{PermLibraryManage, "Manage library", "library"},
	{PermTransportManage, "Manage transport", "transport"},
	{PermFrontOfficeManage, "Manage complaints and enquiries", "front_office"},
	{PermHomeworkManage, "Manage homework", "homework"},
}
