package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to PostKeeper CLI (type 'help' for commands)")

	a.runREPL(ctx, bufio.NewScanner(os.Stdin))
}

// runREPL reads a line, parses the first token as the command, and dispatches.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
func (a *App) runREPL(ctx context.Context, scanner *bufio.Scanner) {

	for {
		fmt.Printf("pk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: add, (l)ist [limit], show <id>, edit <id>, delete <id>, like <id>, dislike <id>, unrate <id>, renew, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, (l)ist [limit], show <id>, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "renew":
			a.Renew(ctx)
		case "add":
			a.addPost(ctx)
		case "l", "list":
			a.list(ctx, args)
		case "show":
			a.show(ctx, args)
		case "edit":
			a.editPost(ctx, args)
		case "delete":
			a.deletePost(ctx, args)
		case "like":
			a.rate(ctx, args, a.api.Like, "Usage: like <id>")
		case "dislike":
			a.rate(ctx, args, a.api.Dislike, "Usage: dislike <id>")
		case "unrate":
			a.rate(ctx, args, a.api.RemoveRate, "Usage: unrate <id>")
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
