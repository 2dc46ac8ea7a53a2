package domain

// Role is the closed set of user roles. A role is fixed at creation and
// never changes.
type Role string

// Allowed roles
const (
	RolePatient Role = "PATIENT" // Self-registered users
	RoleDoctor  Role = "DOCTOR"  // Provisioned accounts
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	Name     string `gorm:"size:255;not null" json:"name"`              // Given name
	Surname  string `gorm:"size:255;not null" json:"surname"`           // Family name
	Role     Role   `gorm:"type:varchar(16);not null" json:"role"`      // PATIENT or DOCTOR
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique login identifier
	Password string `gorm:"size:255;not null" json:"-"`                 // Bcrypt hash, never serialized
	Embg     string `gorm:"size:64;uniqueIndex;not null" json:"embg"`   // Unique national-id string
}

// FullName returns the user's display name as used in notifications.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}
