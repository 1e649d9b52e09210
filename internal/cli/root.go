package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if acc := a.session.Current(); acc != nil {
		return fmt.Sprintf("(%s)", acc.Email)
	}
	return ""
}

func (a *App) printHelp() {
	if a.session.Current() != nil {
		fmt.Println("Available commands: remind, list, read <id>, rm <id>, clear, profile, logout, delaccount, exit")
	} else {
		fmt.Println("Available commands: register, login, bio, exit")
	}
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Moneta CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("moneta %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "bio":
			a.BiometricLogin(ctx)
		case "logout":
			a.Logout(ctx)
		case "profile":
			a.UpdateProfile(ctx)
		case "delaccount":
			a.DeleteAccount(ctx)
		case "remind":
			a.Remind(ctx)
		case "list":
			a.ListNotifications(ctx)
		case "read":
			if len(args) == 0 {
				fmt.Println("Usage: read <id>")
				continue
			}
			a.MarkRead(ctx, args[0])
		case "rm":
			if len(args) == 0 {
				fmt.Println("Usage: rm <id>")
				continue
			}
			a.RemoveNotification(ctx, args[0])
		case "clear":
			a.ClearNotifications(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
