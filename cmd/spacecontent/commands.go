package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
)

const dateLayout = "2006-01-02"

var (
	showKind        string
	listKind        string
	listDescription string
	noteContent     string
	itemDue         string
)

func init() {
	showCmd.Flags().StringVarP(&showKind, "kind", "k", string(model.FilterAll), "Filter: all|todo_lists|generic_lists|notes")
	addListCmd.Flags().StringVarP(&listKind, "kind", "k", "todo", "List kind: todo|generic")
	addListCmd.Flags().StringVar(&listDescription, "description", "", "List description")
	addNoteCmd.Flags().StringVar(&noteContent, "content", "", "Note body")
	addItemCmd.Flags().StringVar(&itemDue, "due", "", "Due date (YYYY-MM-DD), todo lists only")

	rootCmd.AddCommand(
		showCmd,
		searchCmd,
		dueCmd,
		addListCmd,
		addNoteCmd,
		deleteCmd,
		itemsCmd,
		addItemCmd,
		toggleItemCmd,
		deleteItemCmd,
		moveItemCmd,
	)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the content of the space",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter := model.ContentFilter(showKind)
		switch filter {
		case model.FilterAll, model.FilterTodoLists, model.FilterGenericLists, model.FilterNotes:
		default:
			return fmt.Errorf("unknown kind %q", showKind)
		}
		printContent(cmd.OutOrStdout(), app.store.Content(filter))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search list names and note titles and bodies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printContent(cmd.OutOrStdout(), app.store.Search(args[0]))
		return nil
	},
}

var dueCmd = &cobra.Command{
	Use:   "due [YYYY-MM-DD]",
	Short: "Show todo lists with items due on a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if len(args) == 1 {
			var err error
			if day, err = time.ParseInLocation(dateLayout, args[0], time.Local); err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}
		}
		lists, err := app.store.TodoListsDueOn(commandContext(cmd), day)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, l := range lists {
			printContentLine(out, model.TodoListContent(l))
		}
		return nil
	},
}

var addListCmd = &cobra.Command{
	Use:   "add-list <name>",
	Short: "Create a todo or generic list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		var created model.Content
		switch listKind {
		case "todo":
			l, err := app.store.CreateTodoList(ctx, model.TodoList{Name: args[0], Description: listDescription})
			if err != nil {
				return err
			}
			created = model.TodoListContent(l)
		case "generic":
			l, err := app.store.CreateGenericList(ctx, model.GenericList{Name: args[0], Description: listDescription})
			if err != nil {
				return err
			}
			created = model.GenericListContent(l)
		default:
			return fmt.Errorf("unknown list kind %q", listKind)
		}
		printContentLine(cmd.OutOrStdout(), created)
		return nil
	},
}

var addNoteCmd = &cobra.Command{
	Use:   "add-note <title>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := app.store.CreateNote(commandContext(cmd), model.Note{Title: args[0], Content: noteContent})
		if err != nil {
			return err
		}
		printContentLine(cmd.OutOrStdout(), model.NoteContent(n))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a list or note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		switch kindOf(args[0]) {
		case model.KindTodoList:
			return app.store.DeleteTodoList(ctx, args[0])
		case model.KindGenericList:
			return app.store.DeleteGenericList(ctx, args[0])
		case model.KindNote:
			return app.store.DeleteNote(ctx, args[0])
		}
		return apperror.NotFound("content", args[0])
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items <list-id>",
	Short: "Show the items of a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadItems(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, item := range items {
			fmt.Fprintln(out, item)
		}
		return nil
	},
}

var addItemCmd = &cobra.Command{
	Use:   "add-item <list-id> <title>",
	Short: "Append an item to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		listID, title := args[0], args[1]
		switch kindOf(listID) {
		case model.KindTodoList:
			item := model.TodoItem{ListID: listID, Title: title}
			if itemDue != "" {
				due, err := time.ParseInLocation(dateLayout, itemDue, time.Local)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", itemDue, err)
				}
				item.DueDate = &due
			}
			created, err := app.store.CreateTodoItem(ctx, item)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), todoItemLine(created))
			return nil
		case model.KindGenericList:
			if itemDue != "" {
				return apperror.New(apperror.CodeInvalidInput, "generic list items have no due date")
			}
			created, err := app.store.CreateListItem(ctx, model.ListItem{ListID: listID, Title: title})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), listItemLine(created))
			return nil
		}
		return apperror.NotFound("list", listID)
	},
}

var toggleItemCmd = &cobra.Command{
	Use:   "toggle-item <list-id> <item-id>",
	Short: "Flip the completed or checked state of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		switch kindOf(args[0]) {
		case model.KindTodoList:
			item, err := app.store.ToggleTodoItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), todoItemLine(item))
			return nil
		case model.KindGenericList:
			item, err := app.store.ToggleListItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), listItemLine(item))
			return nil
		}
		return apperror.NotFound("list", args[0])
	},
}

var deleteItemCmd = &cobra.Command{
	Use:   "delete-item <list-id> <item-id>",
	Short: "Delete an item from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		switch kindOf(args[0]) {
		case model.KindTodoList:
			return app.store.DeleteTodoItem(ctx, args[1], args[0])
		case model.KindGenericList:
			return app.store.DeleteListItem(ctx, args[1], args[0])
		}
		return apperror.NotFound("list", args[0])
	},
}

var moveItemCmd = &cobra.Command{
	Use:   "move-item <list-id> <item-id> <position>",
	Short: "Move an item to a zero-based position within its list",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		listID, itemID := args[0], args[1]
		pos, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid position %q: %w", args[2], err)
		}

		switch kindOf(listID) {
		case model.KindTodoList:
			items, err := app.store.LoadTodoItems(ctx, listID)
			if err != nil {
				return err
			}
			ordered, err := moveTo(items, itemID, pos)
			if err != nil {
				return err
			}
			return app.store.ReorderTodoItems(ctx, listID, ordered)
		case model.KindGenericList:
			items, err := app.store.LoadListItems(ctx, listID)
			if err != nil {
				return err
			}
			ordered, err := moveTo(items, itemID, pos)
			if err != nil {
				return err
			}
			return app.store.ReorderListItems(ctx, listID, ordered)
		}
		return apperror.NotFound("list", listID)
	},
}

// moveTo moves itemID to pos and renumbers every item in slice order.
func moveTo[I model.Item[I]](items []I, itemID string, pos int) ([]I, error) {
	i := slices.IndexFunc(items, func(item I) bool { return item.GetID() == itemID })
	if i < 0 {
		return nil, apperror.NotFound("item", itemID)
	}
	if pos < 0 || pos >= len(items) {
		return nil, apperror.Newf(apperror.CodeInvalidInput, "position %d out of range 0..%d", pos, len(items)-1)
	}

	item := items[i]
	items = slices.Delete(items, i, i+1)
	items = slices.Insert(items, pos, item)
	for n := range items {
		items[n] = items[n].WithSortOrder(n)
	}
	return items, nil
}

// kindOf reports which loaded collection holds id. It returns "" if none does.
func kindOf(id string) model.ContentKind {
	for _, c := range app.store.Content(model.FilterAll) {
		if c.ID() == id {
			return c.Kind
		}
	}
	return ""
}

func loadItems(cmd *cobra.Command, listID string) ([]string, error) {
	ctx := commandContext(cmd)
	var lines []string
	switch kindOf(listID) {
	case model.KindTodoList:
		items, err := app.store.LoadTodoItems(ctx, listID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			lines = append(lines, todoItemLine(item))
		}
	case model.KindGenericList:
		items, err := app.store.LoadListItems(ctx, listID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			lines = append(lines, listItemLine(item))
		}
	default:
		return nil, apperror.NotFound("list", listID)
	}
	return lines, nil
}

func printContent(w io.Writer, cs []model.Content) {
	if len(cs) == 0 {
		fmt.Fprintln(w, "Nothing here.")
		return
	}
	for _, c := range cs {
		printContentLine(w, c)
	}
}

func printContentLine(w io.Writer, c model.Content) {
	switch c.Kind {
	case model.KindTodoList:
		l := c.TodoList
		fmt.Fprintf(w, "%s  [todo]    %s (%d/%d done)\n", l.ID, l.Name, l.CompletedItemCount, l.TotalItemCount)
	case model.KindGenericList:
		l := c.GenericList
		fmt.Fprintf(w, "%s  [list]    %s (%d/%d checked)\n", l.ID, l.Name, l.CheckedItemCount, l.TotalItemCount)
	case model.KindNote:
		n := c.Note
		fmt.Fprintf(w, "%s  [note]    %s%s\n", n.ID, n.Title, notePreview(n.Content))
	}
}

func notePreview(body string) string {
	body = strings.TrimSpace(strings.ReplaceAll(body, "\n", " "))
	if body == "" {
		return ""
	}
	if r := []rune(body); len(r) > 40 {
		body = string(r[:40]) + "…"
	}
	return ": " + body
}

func todoItemLine(item model.TodoItem) string {
	line := fmt.Sprintf("%d. %s %s  (%s)", item.SortOrder, checkbox(item.Completed), item.Title, item.ID)
	if item.DueDate != nil {
		line += "  due " + item.DueDate.Local().Format(dateLayout)
	}
	return line
}

func listItemLine(item model.ListItem) string {
	return fmt.Sprintf("%d. %s %s  (%s)", item.SortOrder, checkbox(item.Checked), item.Title, item.ID)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
