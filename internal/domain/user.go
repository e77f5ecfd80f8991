package domain

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AdminUserID is the only user that holds the admin role.
const AdminUserID int64 = 1

// User is a gallery account. Hash is a keyed digest of "username:password".
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Hash     string `json:"hash"`
}

// Role is derived from the user id, never stored.
func (u User) Role() UserRole {
	return RoleFor(u.ID)
}

func RoleFor(userID int64) UserRole {
	if userID == AdminUserID {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is the verified caller of a request.
type Identity struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
