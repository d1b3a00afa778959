package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"viewer": {
		"bank:view",
		"bank:export",
	},
	"curator": {
		"bank:view",
		"bank:export",
		"bank:create",
		"bank:delete",
		"imports:view",
	},
	"admin": {
		"*", // everything
	},
}
