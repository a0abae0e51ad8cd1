package model

import "slices"

// Permission represents a string code for a specific system action.
type Permission string

const (
	PermissionBranchesManage Permission = "branches:manage"
	PermissionUsersManage    Permission = "users:manage"

	PermissionStudentsRead  Permission = "students:read"
	PermissionStudentsWrite Permission = "students:write"

	PermissionClassesRead  Permission = "classes:read"
	PermissionClassesWrite Permission = "classes:write"

	PermissionStaffRead  Permission = "staff:read"
	PermissionStaffWrite Permission = "staff:write"

	// PermissionAttendanceMark allows recording staff and student attendance.
	PermissionAttendanceMark Permission = "attendance:mark"
	PermissionAttendanceRead Permission = "attendance:read"

	// PermissionLeavesApply allows a staff member to file their own leave.
	PermissionLeavesApply  Permission = "leaves:apply"
	PermissionLeavesReview Permission = "leaves:review"
	PermissionLeavesRead   Permission = "leaves:read"

	PermissionTimetableRead  Permission = "timetable:read"
	PermissionTimetableWrite Permission = "timetable:write"

	PermissionHostelManage    Permission = "hostel:manage"
	PermissionTransportManage Permission = "transport:manage"
	PermissionFacilitiesRead  Permission = "facilities:read"

	PermissionLibraryManage Permission = "library:manage"
	PermissionLibraryRead   Permission = "library:read"

	PermissionFeesManage Permission = "fees:manage"
	PermissionFeesRead   Permission = "fees:read"
	// PermissionFeesPay allows starting a checkout for an invoice.
	PermissionFeesPay Permission = "fees:pay"

	PermissionAnnouncementsWrite Permission = "announcements:write"

	PermissionRectificationsSubmit Permission = "rectifications:submit"
	PermissionRectificationsReview Permission = "rectifications:review"

	PermissionReportsRead Permission = "reports:read"

	PermissionSettingsRead  Permission = "settings:read"
	PermissionSettingsWrite Permission = "settings:write"

	PermissionMediaUpload Permission = "media:upload"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionBranchesManage, PermissionUsersManage,
	PermissionStudentsRead, PermissionStudentsWrite,
	PermissionClassesRead, PermissionClassesWrite,
	PermissionStaffRead, PermissionStaffWrite,
	PermissionAttendanceMark, PermissionAttendanceRead,
	PermissionLeavesApply, PermissionLeavesReview, PermissionLeavesRead,
	PermissionTimetableRead, PermissionTimetableWrite,
	PermissionHostelManage, PermissionTransportManage, PermissionFacilitiesRead,
	PermissionLibraryManage, PermissionLibraryRead,
	PermissionFeesManage, PermissionFeesRead, PermissionFeesPay,
	PermissionAnnouncementsWrite,
	PermissionRectificationsSubmit, PermissionRectificationsReview,
	PermissionReportsRead,
	PermissionSettingsRead, PermissionSettingsWrite,
	PermissionMediaUpload,
}

// RolePermissions is the fixed grant table per portal role.
var RolePermissions = map[Role][]Permission{
	RoleSuperadmin: AllPermissions,
	RolePrincipal: {
		PermissionStudentsRead, PermissionClassesRead, PermissionClassesWrite,
		PermissionStaffRead, PermissionStaffWrite,
		PermissionAttendanceMark, PermissionAttendanceRead,
		PermissionLeavesApply, PermissionLeavesReview, PermissionLeavesRead,
		PermissionTimetableRead, PermissionTimetableWrite,
		PermissionFacilitiesRead, PermissionLibraryRead, PermissionFeesRead,
		PermissionAnnouncementsWrite,
		PermissionRectificationsSubmit, PermissionRectificationsReview,
		PermissionReportsRead, PermissionSettingsRead, PermissionSettingsWrite,
		PermissionMediaUpload,
	},
	RoleRegistrar: {
		PermissionStudentsRead, PermissionStudentsWrite,
		PermissionClassesRead, PermissionClassesWrite,
		PermissionStaffRead, PermissionStaffWrite,
		PermissionAttendanceMark, PermissionAttendanceRead, PermissionLeavesRead,
		PermissionTimetableRead, PermissionTimetableWrite,
		PermissionHostelManage, PermissionTransportManage, PermissionFacilitiesRead,
		PermissionFeesManage, PermissionFeesRead,
		PermissionAnnouncementsWrite, PermissionRectificationsReview,
		PermissionReportsRead, PermissionSettingsRead, PermissionMediaUpload,
	},
	RoleTeacher: {
		PermissionStudentsRead, PermissionClassesRead, PermissionStaffRead,
		PermissionAttendanceMark, PermissionAttendanceRead,
		PermissionLeavesApply, PermissionTimetableRead,
		PermissionLibraryRead, PermissionAnnouncementsWrite,
		PermissionRectificationsSubmit, PermissionMediaUpload,
	},
	RoleLibrarian: {
		PermissionStudentsRead, PermissionLibraryManage, PermissionLibraryRead,
		PermissionLeavesApply, PermissionMediaUpload,
	},
	RoleStudent: {
		PermissionTimetableRead, PermissionLibraryRead, PermissionFeesRead, PermissionFeesPay,
	},
	RoleParent: {
		PermissionTimetableRead, PermissionFeesRead, PermissionFeesPay,
	},
}

// RoleHasPermission reports whether role is granted p.
func RoleHasPermission(role Role, p Permission) bool {
	return slices.Contains(RolePermissions[role], p)
}
