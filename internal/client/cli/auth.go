package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/easylend/userservice/internal/client/api"
	"github.com/easylend/userservice/internal/common"
	pkgapi "github.com/easylend/userservice/pkg/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates a new account.
// The service sends a confirmation link to the given email; the account
// stays pending until it is confirmed.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	userType, err := getSimpleText(a.reader, "Enter account type (borrower/lender)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, pkgapi.RegisterRequest{
		FullName: fullName,
		Email:    email,
		Password: string(password),
		UserType: userType,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			log.Printf("An account with this email already exists")
			return err
		}
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Printf("Success! %s\n", resp.Message)
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the issued access token and user identity are kept in memory
// for the rest of the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrAccountNotActivated):
			log.Printf("Account is not activated yet, use the confirmation link first")
		case errors.Is(err, common.ErrInvalidCredentials):
			log.Printf("Login unsuccessfull: %s", err.Error())
		default:
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	a.userName = resp.Username
	a.email = resp.Email
	a.accessToken = resp.AccessToken
	log.Printf("Login successfull")
	return nil
}

// Confirm prompts for a confirmation token and activates the account.
func (a *App) Confirm(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter confirmation token", os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.client.Confirm(ctx, token)
	if err != nil {
		log.Printf("Confirmation unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Printf("Success! %s\n", resp.Message)
	return nil
}

// Whoami prints the identity of the current session.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", a.userName, a.email)
	return nil
}

// Logout drops the in-memory session.
func (a *App) Logout(ctx context.Context) error {
	a.userName = ""
	a.email = ""
	a.accessToken = ""
	return nil
}
