package cli

import (
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/session"
)

// CommandHelp holds help information for one command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Examples  []string
}

// Syntax returns the command synopsis.
func (h CommandHelp) Syntax() string {
	syntax := h.Scope + " " + h.Operation
	if usage, ok := session.Usage(h.Scope, h.Operation); ok && usage != "" {
		syntax += " " + usage
	}
	return syntax
}

// printHelp prints general, scope or operation help depending on the number of arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(strings.ToLower(args[0]))
	case 2:
		c.showOperationHelp(strings.ToLower(args[0]), strings.ToLower(args[1]))
	default:
		fmt.Fprintln(c.writer, "Invalid help command. Use 'help [scope] [operation]'")
	}
}

func (c *CLI) showGeneralHelp() {
	fmt.Fprintln(c.writer, "Command syntax: <scope> <operation> [arguments]")
	fmt.Fprintln(c.writer, "Element ids may be shortened to any unique prefix. Quote arguments containing spaces.")
	fmt.Fprintln(c.writer, "\nAvailable commands:")
	currentScope := ""
	for _, h := range commandHelps {
		if h.Scope != currentScope {
			fmt.Fprintf(c.writer, "\n%s:\n", h.Scope)
			currentScope = h.Scope
		}
		fmt.Fprintf(c.writer, "  %-12s %s\n", h.Operation, h.ShortDesc)
	}
}

func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, h := range commandHelps {
		if h.Scope == scope {
			if !found {
				fmt.Fprintf(c.writer, "Commands for %s:\n\n", scope)
				found = true
			}
			fmt.Fprintf(c.writer, "  %-40s %s\n", h.Syntax(), h.ShortDesc)
		}
	}
	if !found {
		fmt.Fprintf(c.writer, "No help found for %s\n", scope)
	}
}

func (c *CLI) showOperationHelp(scope, operation string) {
	for _, h := range commandHelps {
		if h.Scope != scope || h.Operation != operation {
			continue
		}
		fmt.Fprintf(c.writer, "Command: %s %s\n", scope, operation)
		desc := h.LongDesc
		if desc == "" {
			desc = h.ShortDesc
		}
		fmt.Fprintf(c.writer, "Description: %s\n", desc)
		fmt.Fprintf(c.writer, "Syntax: %s\n", h.Syntax())
		if len(h.Examples) > 0 {
			fmt.Fprintln(c.writer, "Examples:")
			for _, ex := range h.Examples {
				fmt.Fprintf(c.writer, "  %s\n", ex)
			}
		}
		return
	}
	fmt.Fprintf(c.writer, "No help found for %s %s\n", scope, operation)
}

// commandHelps lists every command in display order.
var commandHelps = []CommandHelp{
	{Scope: "project", Operation: "add", ShortDesc: "Create and select a project", Examples: []string{`project add "My Shop"`}},
	{Scope: "project", Operation: "list", ShortDesc: "List projects"},
	{Scope: "project", Operation: "select", ShortDesc: "Select a project by name or id"},
	{Scope: "project", Operation: "rename", ShortDesc: "Rename the current project"},
	{Scope: "project", Operation: "delete", ShortDesc: "Delete a project and its pages",
		LongDesc: "Deletes the named project, or the current one when no name is given. All of its pages are removed."},
	{Scope: "project", Operation: "export", ShortDesc: "Write the current project to a document",
		LongDesc: "Writes the current project and all saved pages to a JSON or YAML document. The format follows the extension unless given.",
		Examples: []string{"project export shop.yaml", "project export shop.out json"}},
	{Scope: "project", Operation: "import", ShortDesc: "Load a project document",
		LongDesc: "Reads a project document, checks every page for structural consistency and stores it. A project with the same name is replaced."},

	{Scope: "page", Operation: "add", ShortDesc: "Create and open a page", Examples: []string{"page add Home", `page add "About us" about`}},
	{Scope: "page", Operation: "list", ShortDesc: "List pages of the current project"},
	{Scope: "page", Operation: "select", ShortDesc: "Open a page by name, slug or id",
		LongDesc: "Opens a page in the editor. Unsaved changes to the open page are discarded and the undo history starts over."},
	{Scope: "page", Operation: "save", ShortDesc: "Save the open page"},
	{Scope: "page", Operation: "rename", ShortDesc: "Rename the open page and its slug"},
	{Scope: "page", Operation: "delete", ShortDesc: "Delete a page"},
	{Scope: "page", Operation: "close", ShortDesc: "Close the open page without saving"},

	{Scope: "element", Operation: "add", ShortDesc: "Add an element to the canvas",
		LongDesc: "Adds a new top-level element of the given type. Position defaults to the origin and size to a per-type default.",
		Examples: []string{"element add heading 40 40 600 80 \"Fresh coffee\"", "element add button 40 160"}},
	{Scope: "element", Operation: "list", ShortDesc: "Show the element tree"},
	{Scope: "element", Operation: "show", ShortDesc: "Show every property of an element"},
	{Scope: "element", Operation: "move", ShortDesc: "Move an element by an offset"},
	{Scope: "element", Operation: "place", ShortDesc: "Set an element's position"},
	{Scope: "element", Operation: "resize", ShortDesc: "Set an element's size"},
	{Scope: "element", Operation: "style", ShortDesc: "Merge style properties", Examples: []string{"element style e1 backgroundColor=#222 color=white"}},
	{Scope: "element", Operation: "unstyle", ShortDesc: "Remove a style property"},
	{Scope: "element", Operation: "content", ShortDesc: "Set text content"},
	{Scope: "element", Operation: "media", ShortDesc: "Set image or video source"},
	{Scope: "element", Operation: "attr", ShortDesc: "Set HTML attributes"},
	{Scope: "element", Operation: "class", ShortDesc: "Replace CSS classes"},
	{Scope: "element", Operation: "transform", ShortDesc: "Set transform components", Examples: []string{"element transform e1 rotate=15 scaleX=1.2"}},
	{Scope: "element", Operation: "visible", ShortDesc: "Show or hide an element"},
	{Scope: "element", Operation: "lock", ShortDesc: "Lock or unlock an element"},
	{Scope: "element", Operation: "responsive", ShortDesc: "Set per-device style overrides", Examples: []string{"element responsive e1 mobile width=100%"}},
	{Scope: "element", Operation: "code", ShortDesc: "Attach custom HTML, CSS or JS"},
	{Scope: "element", Operation: "data", ShortDesc: "Bind an element to a data source"},
	{Scope: "element", Operation: "delete", ShortDesc: "Delete an element and its descendants"},
	{Scope: "element", Operation: "duplicate", ShortDesc: "Duplicate an element"},
	{Scope: "element", Operation: "front", ShortDesc: "Bring to front"},
	{Scope: "element", Operation: "back", ShortDesc: "Send to back"},
	{Scope: "element", Operation: "up", ShortDesc: "Move one layer up"},
	{Scope: "element", Operation: "down", ShortDesc: "Move one layer down"},
	{Scope: "element", Operation: "template", ShortDesc: "Replace the canvas with elements from a file"},
	{Scope: "element", Operation: "clear", ShortDesc: "Remove every element"},
	{Scope: "element", Operation: "commit", ShortDesc: "Record an undo point"},

	{Scope: "select", Operation: "set", ShortDesc: "Select one element"},
	{Scope: "select", Operation: "many", ShortDesc: "Select several elements"},
	{Scope: "select", Operation: "toggle", ShortDesc: "Add or remove an element from the selection"},
	{Scope: "select", Operation: "all", ShortDesc: "Select every top-level element"},
	{Scope: "select", Operation: "clear", ShortDesc: "Clear the selection"},
	{Scope: "select", Operation: "show", ShortDesc: "Show the selection"},

	{Scope: "arrange", Operation: "group", ShortDesc: "Group elements",
		LongDesc: "Wraps two or more elements in a new group sized to their bounding box. Without ids the selection is used."},
	{Scope: "arrange", Operation: "ungroup", ShortDesc: "Dissolve a group"},
	{Scope: "arrange", Operation: "align", ShortDesc: "Align elements to an edge or centre line", Examples: []string{"arrange align left", "arrange align middle e1 e2"}},
	{Scope: "arrange", Operation: "distribute", ShortDesc: "Space three or more elements evenly"},
	{Scope: "arrange", Operation: "reparent", ShortDesc: "Move an element into a group, or to the top level"},

	{Scope: "edit", Operation: "undo", ShortDesc: "Undo the last change"},
	{Scope: "edit", Operation: "redo", ShortDesc: "Redo the last undone change"},
	{Scope: "edit", Operation: "copy", ShortDesc: "Copy elements to the clipboard"},
	{Scope: "edit", Operation: "cut", ShortDesc: "Cut elements to the clipboard"},
	{Scope: "edit", Operation: "paste", ShortDesc: "Paste the clipboard",
		LongDesc: "Pastes the clipboard contents as new top-level elements. Without a point they land 20 units from the originals. A cut can be pasted once."},
	{Scope: "edit", Operation: "duplicate", ShortDesc: "Duplicate the selection"},
	{Scope: "edit", Operation: "delete", ShortDesc: "Delete the selection"},
	{Scope: "edit", Operation: "history", ShortDesc: "Show undo and clipboard state"},

	{Scope: "anim", Operation: "add", ShortDesc: "Add an animation", Examples: []string{"anim add e1 fade 600 0 ease-out"}},
	{Scope: "anim", Operation: "update", ShortDesc: "Replace an animation"},
	{Scope: "anim", Operation: "remove", ShortDesc: "Remove an animation"},
	{Scope: "anim", Operation: "list", ShortDesc: "List animations"},

	{Scope: "action", Operation: "add", ShortDesc: "Add an interaction",
		LongDesc: "Adds an interaction triggered by an event. Options: url, target, script, method, event (custom event name) and newtab=on|off.",
		Examples: []string{"action add e1 link click url=/shop", "action add e2 scroll click target=pricing", `action add e3 custom custom event=dblclick "script=alert('hi')"`}},
	{Scope: "action", Operation: "update", ShortDesc: "Replace an interaction"},
	{Scope: "action", Operation: "remove", ShortDesc: "Remove an interaction"},
	{Scope: "action", Operation: "list", ShortDesc: "List interactions"},

	{Scope: "export", Operation: "html", ShortDesc: "Write the page as HTML"},
	{Scope: "export", Operation: "publish", ShortDesc: "Publish the page unless unchanged"},
	{Scope: "export", Operation: "png", ShortDesc: "Render a wireframe PNG"},
	{Scope: "export", Operation: "copy", ShortDesc: "Copy the page HTML to the clipboard"},
	{Scope: "export", Operation: "code", ShortDesc: "Print the page HTML"},
	{Scope: "export", Operation: "preview", ShortDesc: "Serve a live preview over HTTP"},
	{Scope: "export", Operation: "stop", ShortDesc: "Stop the preview server"},

	{Scope: "system", Operation: "status", ShortDesc: "Show session state"},
	{Scope: "system", Operation: "exit", ShortDesc: "Exit the program"},
	{Scope: "system", Operation: "quit", ShortDesc: "Exit the program"},
}
