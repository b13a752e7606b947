package model

// Parent is the set of accessors shared by every space-scoped entity.
// The With* methods return a modified copy and never touch the receiver.
type Parent[P any] interface {
	GetID() string
	GetSpaceID() string
	GetSortOrder() int
	WithSpaceID(id string) P
	WithSortOrder(n int) P
}

// CountedParent is a parent that carries derived item counters.
type CountedParent[P any] interface {
	Parent[P]
	Counts() (total int, completed int)
	WithCounts(total, completed int) P
}

// Item is the set of accessors shared by child items of a list.
type Item[I any] interface {
	GetID() string
	GetParentID() string
	GetSortOrder() int
	IsCompleted() bool
	WithSortOrder(n int) I
	WithCompleted(done bool) I
	// Clone returns a deep copy.
	Clone() I
}

var (
	_ CountedParent[TodoList]    = TodoList{}
	_ CountedParent[GenericList] = GenericList{}
	_ Parent[Note]               = Note{}
	_ Item[TodoItem]             = TodoItem{}
	_ Item[ListItem]             = ListItem{}
)
