package account

// Level is the tenant permission level an account holds.
type Level string

const (
	LevelAdmin    Level = "admin"
	LevelAM       Level = "am" // assistant manager
	LevelManager  Level = "manager"
	LevelEmployee Level = "employee"
)

var LevelValues = []string{
	string(LevelAdmin),
	string(LevelAM),
	string(LevelManager),
	string(LevelEmployee),
}

// IsApprover reports whether the level may decide holiday requests and
// accept shift requests.
func (l Level) IsApprover() bool {
	switch l {
	case LevelAdmin, LevelAM, LevelManager:
		return true
	}
	return false
}
