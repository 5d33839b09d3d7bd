package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

const defaultListLimit = 20

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (a *App) addPost(ctx context.Context) {

	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	id, err := a.api.CreatePost(ctx, title, content)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Published post %d\n", id)
}

func (a *App) show(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("Usage: show <id>")
		return
	}

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("#%d %s (by %s, %s)\n", post.ID, post.Title, post.Author,
		post.PostedAt.Format("2006-01-02 15:04"))
	if post.Content != "" {
		fmt.Println(post.Content)
	}
	fmt.Printf("likes: %d %v, dislikes: %d %v\n",
		len(post.Likes), post.Likes, len(post.Dislikes), post.Dislikes)
}

func (a *App) list(ctx context.Context, args []string) {
	limit := defaultListLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Usage: list [limit]")
			return
		}
		limit = n
	}

	posts, err := a.api.ListPosts(ctx, limit)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	for _, post := range posts {
		fmt.Printf("#%d %s (by %s) +%d/-%d\n",
			post.ID, post.Title, post.Author, len(post.Likes), len(post.Dislikes))
	}
}

func (a *App) editPost(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("Usage: edit <id>")
		return
	}

	title, err := GetSimpleText(a.reader, "Enter new title (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	content, err := GetMultiline(a.reader, "Enter new content (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.api.EditPost(ctx, id, title, content); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Updated")
}

func (a *App) deletePost(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("Usage: delete <id>")
		return
	}

	if err := a.api.DeletePost(ctx, id); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Deleted")
}

func (a *App) rate(ctx context.Context, args []string, action func(context.Context, int64) error, usage string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println(usage)
		return
	}

	if err := action(ctx, id); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Done")
}
