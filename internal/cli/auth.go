package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/moneta-app/moneta/internal/accounts"
	"github.com/moneta-app/moneta/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register collects profile fields and a password and creates the account.
// Registration implies login: on success the new account is active.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.session.Register(ctx, firstName, lastName, email, phone, string(password))
	if err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Printf("Welcome, %s!\n", acc.FirstName)
	return nil
}

// Login collects credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	fmt.Printf("Welcome back, %s!\n", acc.FirstName)
	return nil
}

// BiometricLogin re-activates the most recently used account via the
// external authenticator.
func (a *App) BiometricLogin(ctx context.Context) error {
	acc, err := a.session.LoginWithBiometric(ctx, "unlock Moneta")
	if err != nil {
		fmt.Println("Quick access failed:", err)
		return err
	}
	fmt.Printf("Welcome back, %s!\n", acc.FirstName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// UpdateProfile prompts for new profile values; an empty answer keeps the
// current one.
func (a *App) UpdateProfile(ctx context.Context) error {
	cur := a.session.Current()
	if cur == nil {
		fmt.Println("Not logged in.")
		return common.ErrNotLoggedIn
	}

	var upd accounts.ProfileUpdate

	firstName, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s]", cur.FirstName), os.Stdout)
	if err != nil {
		return err
	}
	if firstName != "" {
		upd.FirstName = &firstName
	}

	lastName, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s]", cur.LastName), os.Stdout)
	if err != nil {
		return err
	}
	if lastName != "" {
		upd.LastName = &lastName
	}

	phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone [%s]", cur.Phone), os.Stdout)
	if err != nil {
		return err
	}
	if phone != "" {
		upd.Phone = &phone
	}

	acc, err := a.session.UpdateProfile(ctx, upd)
	if err != nil {
		fmt.Println("Update failed:", err)
		return err
	}

	fmt.Printf("Profile saved: %s %s, %s\n", acc.FirstName, acc.LastName, acc.Phone)
	return nil
}

// DeleteAccount removes the active account after confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete the active account? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.session.DeleteAccount(ctx); err != nil {
		fmt.Println("Deletion failed:", err)
		return err
	}
	fmt.Println("Account deleted.")
	return nil
}
