package repository

// Collection names, shared with the pagination engine's callers.
const (
	CollUsers              = "users"
	CollFollows            = "follows"
	CollConnections        = "connections"
	CollBlocks             = "blocks"
	CollGroups             = "groups"
	CollRemovedConnections = "removed_connections"
)
