package interfaces

// Repository bundles the in-memory state of one chat platform
type Repository interface {
	Recent() RecentMessageRepository
	Snipe() SnipeRepository
}
