package privilege

// Checker answers whether a user holds the elevated (moderator)
// capability. The chat platform is the source of truth in production;
// the static implementation below covers deployments that configure
// moderators directly.
type Checker interface {
	IsPrivileged(userID string) bool
}

// StaticChecker grants privilege to a fixed set of user ids.
type StaticChecker struct {
	moderators map[string]struct{}
}

// NewStaticChecker creates a Checker from a moderator id list.
func NewStaticChecker(moderatorIDs []string) *StaticChecker {
	mods := make(map[string]struct{}, len(moderatorIDs))
	for _, id := range moderatorIDs {
		mods[id] = struct{}{}
	}
	return &StaticChecker{moderators: mods}
}

func (c *StaticChecker) IsPrivileged(userID string) bool {
	_, ok := c.moderators[userID]
	return ok
}
