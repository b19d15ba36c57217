package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleRegistered Role = "registered"
	RoleIdentified Role = "identified"
	RoleAnalog     Role = "analog"
	RoleModerator  Role = "moderator"
)

// Permission representa uma permissão específica
type Permission string

const (
	// Consultation permissions
	PermissionConsultationRead  Permission = "consultations.read"
	PermissionConsultationWrite Permission = "consultations.write"

	// Comment permissions
	PermissionCommentRead    Permission = "comments.read"
	PermissionCommentWrite   Permission = "comments.write"
	PermissionCommentApprove Permission = "comments.approve"

	// Moderation permissions
	PermissionCommentModerate Permission = "comments.moderate"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleModerator: {
		PermissionConsultationRead,
		PermissionConsultationWrite,
		PermissionCommentRead,
		PermissionCommentWrite,
		PermissionCommentApprove,
		PermissionCommentModerate,
	},
	RoleIdentified: {
		PermissionConsultationRead,
		PermissionConsultationWrite,
		PermissionCommentRead,
		PermissionCommentWrite,
		PermissionCommentApprove,
	},
	RoleRegistered: {
		PermissionConsultationRead,
		PermissionCommentRead,
		PermissionCommentWrite,
		PermissionCommentApprove,
	},
	RoleAnalog: {
		PermissionCommentWrite,
	},
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
