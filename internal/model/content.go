package model

// ContentKind identifies which of the three parent entity kinds a value is.
type ContentKind string

const (
	KindTodoList    ContentKind = "todo_list"
	KindGenericList ContentKind = "generic_list"
	KindNote        ContentKind = "note"
)

// ContentFilter selects which parent collections a query covers.
type ContentFilter string

const (
	FilterAll          ContentFilter = "all"
	FilterTodoLists    ContentFilter = "todo_lists"
	FilterGenericLists ContentFilter = "generic_lists"
	FilterNotes        ContentFilter = "notes"
)

// Includes reports whether the filter covers the given kind.
// An empty filter behaves like FilterAll.
func (f ContentFilter) Includes(kind ContentKind) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterTodoLists:
		return kind == KindTodoList
	case FilterGenericLists:
		return kind == KindGenericList
	case FilterNotes:
		return kind == KindNote
	}
	return false
}

// Content is a tagged union over the parent entity kinds. Exactly one of
// the pointers is set, matching Kind.
type Content struct {
	Kind        ContentKind  `json:"kind"`
	TodoList    *TodoList    `json:"todo_list,omitempty"`
	GenericList *GenericList `json:"generic_list,omitempty"`
	Note        *Note        `json:"note,omitempty"`
}

func TodoListContent(l TodoList) Content       { return Content{Kind: KindTodoList, TodoList: &l} }
func GenericListContent(l GenericList) Content { return Content{Kind: KindGenericList, GenericList: &l} }
func NoteContent(n Note) Content               { return Content{Kind: KindNote, Note: &n} }

// ID returns the identifier of the wrapped entity.
func (c Content) ID() string {
	switch c.Kind {
	case KindTodoList:
		return c.TodoList.ID
	case KindGenericList:
		return c.GenericList.ID
	case KindNote:
		return c.Note.ID
	}
	return ""
}

// Title returns the display name of the wrapped entity.
func (c Content) Title() string {
	switch c.Kind {
	case KindTodoList:
		return c.TodoList.Name
	case KindGenericList:
		return c.GenericList.Name
	case KindNote:
		return c.Note.Title
	}
	return ""
}
