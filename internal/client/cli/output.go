package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"blogsphere/internal/client/api"
	"blogsphere/internal/client/session"
	"blogsphere/internal/envelope"
)

const timeLayout = "2006-01-02 15:04"

// emit prints v as indented JSON when --json is set and reports whether it did.
func (a *App) emit(v any) (bool, error) {
	if !a.JSON {
		return false, nil
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func authorName(u *session.User) string {
	if u == nil {
		return "-"
	}
	return u.UserName
}

func (a *App) printUser(u session.User) error {
	if ok, err := a.emit(u); ok {
		return err
	}
	tw := newTable(a.Out)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Username:\t%s\n", u.UserName)
	if u.Code != 0 {
		fmt.Fprintf(tw, "Code:\t%06d\n", u.Code)
	}
	if u.Description != "" {
		fmt.Fprintf(tw, "About:\t%s\n", u.Description)
	}
	if u.Avatar != "" {
		fmt.Fprintf(tw, "Avatar:\t%s\n", u.Avatar)
	}
	if u.Banner != "" {
		fmt.Fprintf(tw, "Banner:\t%s\n", u.Banner)
	}
	fmt.Fprintf(tw, "Followers:\t%d\n", u.Followers)
	fmt.Fprintf(tw, "Following:\t%d\n", u.Following)
	return tw.Flush()
}

func (a *App) printUsers(users []session.User) error {
	if ok, err := a.emit(users); ok {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.Out, "No users.")
		return nil
	}
	tw := newTable(a.Out)
	fmt.Fprintln(tw, "ID\tUSERNAME\tFOLLOWERS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", u.ID, u.UserName, u.Followers)
	}
	return tw.Flush()
}

func (a *App) printBlogs(page envelope.Page[api.Blog]) error {
	if ok, err := a.emit(page); ok {
		return err
	}
	if len(page.Items) == 0 {
		fmt.Fprintln(a.Out, "No blogs.")
		return nil
	}
	tw := newTable(a.Out)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tTAGS\tCREATED")
	for _, b := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, authorName(b.Author), strings.Join(b.Tags, ","), formatTime(b.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "page %d, %d of %d\n", page.Page, len(page.Items), page.Total)
	return nil
}

func (a *App) printBlog(b api.Blog) error {
	if ok, err := a.emit(b); ok {
		return err
	}
	fmt.Fprintf(a.Out, "%s\n", b.Title)
	fmt.Fprintf(a.Out, "by %s on %s", authorName(b.Author), formatTime(b.CreatedAt))
	if len(b.Tags) > 0 {
		fmt.Fprintf(a.Out, "  [%s]", strings.Join(b.Tags, ", "))
	}
	fmt.Fprintf(a.Out, "\nid: %s\n\n%s\n", b.ID, b.Content)
	return nil
}

func (a *App) printComments(comments []api.Comment) error {
	if ok, err := a.emit(comments); ok {
		return err
	}
	if len(comments) == 0 {
		fmt.Fprintln(a.Out, "No comments.")
		return nil
	}
	for _, c := range comments {
		fmt.Fprintf(a.Out, "%s  %s (%s)\n  %s\n", c.ID, authorName(c.Author), formatTime(c.CreatedAt), c.Content)
		for _, r := range c.Replies {
			fmt.Fprintf(a.Out, "    %s  %s (%s)\n      %s\n", r.ID, authorName(r.Author), formatTime(r.CreatedAt), r.Content)
		}
	}
	return nil
}

func (a *App) printComment(c api.Comment) error {
	if ok, err := a.emit(c); ok {
		return err
	}
	fmt.Fprintf(a.Out, "Comment %s posted.\n", c.ID)
	return nil
}

func (a *App) printNotifications(items []api.Notification) error {
	if ok, err := a.emit(items); ok {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.Out, "No notifications.")
		return nil
	}
	tw := newTable(a.Out)
	fmt.Fprintln(tw, "ID\t\tTYPE\tMESSAGE\tWHEN")
	for _, n := range items {
		mark := "*"
		if n.Read {
			mark = ""
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, mark, n.Type, n.Message, formatTime(n.CreatedAt))
	}
	return tw.Flush()
}

func (a *App) printNotification(n api.Notification) {
	if ok, _ := a.emit(n); ok {
		return
	}
	fmt.Fprintf(a.Out, "[%s] %s\n", n.Type, n.Message)
}

func (a *App) printPhotos(photos []api.Photo) error {
	if ok, err := a.emit(photos); ok {
		return err
	}
	if len(photos) == 0 {
		fmt.Fprintln(a.Out, "No photos.")
		return nil
	}
	tw := newTable(a.Out)
	fmt.Fprintln(tw, "ID\tFILE\tSIZE\tCAPTION\tUPLOADED")
	for _, p := range photos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.FileName, p.Size, p.Caption, formatTime(p.CreatedAt))
	}
	return tw.Flush()
}
